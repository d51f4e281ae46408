// Package messaging is the message channel between the popup and the
// orchestrator.
//
// A request is delivered to the first handler that accepts it. The handler
// runs on its own goroutine and always produces exactly one reply; the sender
// waits for that reply or for its context to end, whichever comes first.
package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/entrhq/pagesage/pkg/types"
)

// ErrNoReceiver is returned when no handler accepts a request.
var ErrNoReceiver = errors.New("could not establish connection: receiving end does not exist")

// Handler processes popup requests.
type Handler interface {
	// Accepts reports whether the handler answers req. Requests nobody
	// accepts get no reply.
	Accepts(req types.Request) bool

	// Handle produces the single reply for req.
	Handle(ctx context.Context, req types.Request) types.PopupReply
}

// Runtime routes requests to registered handlers.
type Runtime struct {
	mu       sync.RWMutex
	handlers []Handler
	inflight sync.WaitGroup
}

// New creates an empty runtime.
func New() *Runtime {
	return &Runtime{}
}

// OnMessage registers h. Handlers are consulted in registration order.
func (r *Runtime) OnMessage(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

func (r *Runtime) route(req types.Request) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.handlers {
		if h.Accepts(req) {
			return h
		}
	}
	return nil
}

// SendMessage delivers req and waits for its reply.
//
// When ctx ends first, SendMessage returns ctx.Err() and the handler keeps
// running with a cancelled context until it settles on its own.
func (r *Runtime) SendMessage(ctx context.Context, req types.Request) (types.PopupReply, error) {
	h := r.route(req)
	if h == nil {
		return types.PopupReply{}, ErrNoReceiver
	}

	handlerCtx, cancel := context.WithCancel(ctx)
	replies := make(chan types.PopupReply, 1)

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer cancel()
		replies <- h.Handle(handlerCtx, req)
	}()

	select {
	case reply := <-replies:
		return reply, nil
	case <-ctx.Done():
		return types.PopupReply{}, ctx.Err()
	}
}

// Wait blocks until every handler started by SendMessage has returned.
func (r *Runtime) Wait() {
	r.inflight.Wait()
}

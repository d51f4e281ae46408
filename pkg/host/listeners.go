package host

import (
	"context"
	"sync"

	"github.com/entrhq/pagesage/pkg/types"
)

// Listener answers messages inside one tab. It returns false when it does
// not handle the message kind.
type Listener interface {
	HandleMessage(ctx context.Context, msg types.PageMessage) (types.PageTextReply, bool)
}

// Listeners is a per-tab listener registry shared by host implementations.
type Listeners struct {
	mu    sync.RWMutex
	byTab map[int]Listener
}

// NewListeners creates an empty registry.
func NewListeners() *Listeners {
	return &Listeners{byTab: make(map[int]Listener)}
}

// Register installs l for tabID, replacing any previous listener.
func (r *Listeners) Register(tabID int, l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTab[tabID] = l
}

// Remove drops the listener of tabID.
func (r *Listeners) Remove(tabID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTab, tabID)
}

// Get returns the listener of tabID.
func (r *Listeners) Get(tabID int) (Listener, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byTab[tabID]
	return l, ok
}

// Deliver hands msg to the tab's listener.
func (r *Listeners) Deliver(ctx context.Context, tabID int, msg types.PageMessage) (types.PageTextReply, error) {
	l, ok := r.Get(tabID)
	if !ok {
		return types.PageTextReply{}, ErrNoReceiver
	}

	reply, handled := l.HandleMessage(ctx, msg)
	if !handled {
		return types.PageTextReply{}, ErrNoResponse
	}
	return reply, nil
}

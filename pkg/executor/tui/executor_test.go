package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pagesage/pkg/messaging"
	"github.com/entrhq/pagesage/pkg/types"
)

// stallingHandler never answers on its own; it returns once its context ends.
type stallingHandler struct {
	started  chan struct{}
	canceled chan struct{}
}

func (h *stallingHandler) Accepts(types.Request) bool { return true }

func (h *stallingHandler) Handle(ctx context.Context, req types.Request) types.PopupReply {
	close(h.started)
	<-ctx.Done()
	close(h.canceled)
	return types.ErrReply(types.ErrorKindCanceled, "Error: request canceled")
}

func TestExecutor_QuitCancelsInflightRequest(t *testing.T) {
	handler := &stallingHandler{started: make(chan struct{}), canceled: make(chan struct{})}
	rt := messaging.New()
	rt.OnMessage(handler)

	input, keys := io.Pipe()
	defer keys.Close()

	exec := NewExecutor(rt)
	exec.programOpts = []tea.ProgramOption{tea.WithInput(input), tea.WithOutput(io.Discard)}

	done := make(chan error, 1)
	go func() { done <- exec.Run(context.Background()) }()

	_, err := keys.Write([]byte("s"))
	require.NoError(t, err)
	select {
	case <-handler.started:
	case <-time.After(2 * time.Second):
		t.Fatal("summary request never reached the handler")
	}

	_, err = keys.Write([]byte("q"))
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("popup did not quit")
	}

	select {
	case <-handler.canceled:
	case <-time.After(time.Second):
		t.Fatal("in-flight request was not canceled when the popup closed")
	}

	waited := make(chan struct{})
	go func() {
		rt.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("runtime still has a handler in flight")
	}
}

package host

import (
	"context"
	"testing"

	"github.com/entrhq/pagesage/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoListener struct{ text string }

func (e echoListener) HandleMessage(_ context.Context, msg types.PageMessage) (types.PageTextReply, bool) {
	if msg.Type != types.PageMessageGetText {
		return types.PageTextReply{}, false
	}
	return types.TextReply(e.text), true
}

func TestListeners_Deliver(t *testing.T) {
	ctx := context.Background()
	r := NewListeners()

	_, err := r.Deliver(ctx, 1, types.PageMessage{Type: types.PageMessageGetText})
	assert.ErrorIs(t, err, ErrNoReceiver)

	r.Register(1, echoListener{text: "hello"})
	reply, err := r.Deliver(ctx, 1, types.PageMessage{Type: types.PageMessageGetText})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply.Text)

	_, err = r.Deliver(ctx, 1, types.PageMessage{Type: types.PageMessagePing})
	assert.ErrorIs(t, err, ErrNoResponse)

	r.Remove(1)
	_, err = r.Deliver(ctx, 1, types.PageMessage{Type: types.PageMessageGetText})
	assert.ErrorIs(t, err, ErrNoReceiver)
}

func TestTab_HasID(t *testing.T) {
	assert.True(t, Tab{ID: 3}.HasID())
	assert.False(t, Tab{ID: TabIDNone}.HasID())
}

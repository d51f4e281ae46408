package popup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/entrhq/pagesage/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type senderFunc func(ctx context.Context, req types.Request) (types.PopupReply, error)

func (f senderFunc) SendMessage(ctx context.Context, req types.Request) (types.PopupReply, error) {
	return f(ctx, req)
}

func replying(reply types.PopupReply, err error) Sender {
	return senderFunc(func(context.Context, types.Request) (types.PopupReply, error) {
		return reply, err
	})
}

type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestController_InitialState(t *testing.T) {
	c := NewController(replying(types.OkReply("x"), nil))
	s := c.Snapshot()

	assert.Equal(t, MessagesFor("en").Initial, s.ResultText)
	assert.True(t, s.Placeholder)
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsError)
	assert.Equal(t, CopyIdle, s.CopyState)
	assert.False(t, c.CanCopy())
}

func TestController_MessagingUnavailable(t *testing.T) {
	c := NewController(nil)

	require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))

	s := c.Snapshot()
	assert.Equal(t, MessagesFor("en").APIUnavailable, s.ResultText)
	assert.True(t, s.IsError)
	assert.False(t, s.IsLoading)
	assert.Equal(t, types.ErrorKindAPIUnavailable, s.ErrorKind)
}

func TestController_TriggerAction(t *testing.T) {
	tests := []struct {
		name     string
		reply    types.PopupReply
		err      error
		wantText string
		wantErr  bool
		wantKind types.ErrorKind
	}{
		{
			name:     "summary shown",
			reply:    types.OkReply("A greeting."),
			wantText: "A greeting.",
		},
		{
			name:     "empty page error shown verbatim",
			reply:    types.ErrReply(types.ErrorKindExtraction, "Error: no extractable text found"),
			wantText: "Error: no extractable text found",
			wantErr:  true,
			wantKind: types.ErrorKindExtraction,
		},
		{
			name:     "restricted page is an error",
			reply:    types.ErrReply(types.ErrorKindRestrictedPage, "This page cannot be summarized."),
			wantText: "This page cannot be summarized.",
			wantErr:  true,
			wantKind: types.ErrorKindRestrictedPage,
		},
		{
			name:     "model failure",
			reply:    types.ErrReply(types.ErrorKindGeneration, "Error processing summary: quota exceeded"),
			wantText: "Error processing summary: quota exceeded",
			wantErr:  true,
			wantKind: types.ErrorKindGeneration,
		},
		{
			name:     "reply without summary",
			reply:    types.PopupReply{},
			wantText: "Failed to retrieve the Summarize response.",
			wantErr:  true,
			wantKind: types.ErrorKindInternal,
		},
		{
			name:     "tagged error without text",
			reply:    types.PopupReply{Error: &types.ReplyError{Kind: types.ErrorKindInternal}},
			wantText: "An unknown error occurred.",
			wantErr:  true,
			wantKind: types.ErrorKindInternal,
		},
		{
			name:     "tagged error with message only",
			reply:    types.PopupReply{Error: &types.ReplyError{Kind: types.ErrorKindGeneration, Message: "quota exceeded"}},
			wantText: "Error: quota exceeded",
			wantErr:  true,
			wantKind: types.ErrorKindGeneration,
		},
		{
			name:     "channel failure",
			err:      errors.New("receiving end does not exist"),
			wantText: "Error: receiving end does not exist",
			wantErr:  true,
			wantKind: types.ErrorKindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(replying(tt.reply, tt.err))

			require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))

			s := c.Snapshot()
			assert.Equal(t, tt.wantText, s.ResultText)
			assert.Equal(t, tt.wantErr, s.IsError)
			assert.Equal(t, tt.wantKind, s.ErrorKind)
			assert.False(t, s.IsLoading)
			assert.Equal(t, !tt.wantErr, c.CanCopy())
		})
	}
}

func TestController_LoadingSpansTheRequest(t *testing.T) {
	release := make(chan struct{})
	var sawRequest types.Request

	var mu sync.Mutex
	var loadingTransitions []bool
	c := NewController(
		senderFunc(func(_ context.Context, req types.Request) (types.PopupReply, error) {
			sawRequest = req
			<-release
			return types.OkReply("done"), nil
		}),
		WithOnChange(func(s State) {
			mu.Lock()
			defer mu.Unlock()
			loadingTransitions = append(loadingTransitions, s.IsLoading)
		}),
	)

	done := make(chan error, 1)
	go func() { done <- c.TriggerAction(context.Background(), types.RequestEssence) }()

	require.Eventually(t, func() bool { return c.Snapshot().IsLoading }, time.Second, time.Millisecond)
	s := c.Snapshot()
	assert.Equal(t, "Running Essence...", s.ResultText)
	assert.False(t, s.IsError)

	// Buttons are disabled while loading: a second trigger is refused.
	assert.ErrorIs(t, c.TriggerAction(context.Background(), types.RequestSummary), ErrBusy)
	assert.True(t, c.Snapshot().IsLoading)

	close(release)
	require.NoError(t, <-done)

	assert.False(t, c.Snapshot().IsLoading)
	assert.Equal(t, "done", c.Snapshot().ResultText)
	assert.Equal(t, types.RequestEssence, sawRequest.Type)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, loadingTransitions)
}

func TestController_LoadingClearedOnCancellation(t *testing.T) {
	c := NewController(senderFunc(func(ctx context.Context, _ types.Request) (types.PopupReply, error) {
		<-ctx.Done()
		return types.PopupReply{}, ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.NoError(t, c.TriggerAction(ctx, types.RequestSummary))

	s := c.Snapshot()
	assert.False(t, s.IsLoading)
	assert.True(t, s.IsError)
	assert.Equal(t, types.ErrorKindTimeout, s.ErrorKind)
}

func TestController_CopyResult(t *testing.T) {
	t.Run("success then idle", func(t *testing.T) {
		clip := &fakeClipboard{}
		c := NewController(replying(types.OkReply("A greeting."), nil),
			WithClipboard(clip), WithCopyResetDelay(20*time.Millisecond))
		require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))

		require.NoError(t, c.CopyResult())
		assert.Equal(t, CopyCopied, c.Snapshot().CopyState)
		assert.Equal(t, "A greeting.", clip.text)

		assert.Eventually(t, func() bool { return c.Snapshot().CopyState == CopyIdle }, time.Second, 5*time.Millisecond)
	})

	t.Run("failure then idle", func(t *testing.T) {
		clip := &fakeClipboard{err: errors.New("permission denied")}
		c := NewController(replying(types.OkReply("A greeting."), nil),
			WithClipboard(clip), WithCopyResetDelay(20*time.Millisecond))
		require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))

		assert.Error(t, c.CopyResult())
		assert.Equal(t, CopyFailed, c.Snapshot().CopyState)

		assert.Eventually(t, func() bool { return c.Snapshot().CopyState == CopyIdle }, time.Second, 5*time.Millisecond)
	})

	t.Run("reset happens even after a new action", func(t *testing.T) {
		clip := &fakeClipboard{}
		c := NewController(replying(types.OkReply("A greeting."), nil),
			WithClipboard(clip), WithCopyResetDelay(30*time.Millisecond))
		require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))
		require.NoError(t, c.CopyResult())

		require.NoError(t, c.TriggerAction(context.Background(), types.RequestEssence))
		assert.Eventually(t, func() bool { return c.Snapshot().CopyState == CopyIdle }, time.Second, 5*time.Millisecond)
	})

	t.Run("second copy restarts the reset delay", func(t *testing.T) {
		clip := &fakeClipboard{}
		c := NewController(replying(types.OkReply("A greeting."), nil),
			WithClipboard(clip), WithCopyResetDelay(200*time.Millisecond))
		require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))

		require.NoError(t, c.CopyResult())
		time.Sleep(120 * time.Millisecond)
		require.NoError(t, c.CopyResult())
		time.Sleep(120 * time.Millisecond)

		assert.Equal(t, CopyCopied, c.Snapshot().CopyState, "first timer must not reset the second copy")
		assert.Eventually(t, func() bool { return c.Snapshot().CopyState == CopyIdle }, time.Second, 5*time.Millisecond)
	})

	t.Run("nothing to copy", func(t *testing.T) {
		clip := &fakeClipboard{}
		c := NewController(replying(types.ErrReply(types.ErrorKindExtraction, "Error: no extractable text found"), nil),
			WithClipboard(clip))

		assert.ErrorIs(t, c.CopyResult(), ErrNothingToCopy, "placeholder is not copyable")

		require.NoError(t, c.TriggerAction(context.Background(), types.RequestSummary))
		assert.ErrorIs(t, c.CopyResult(), ErrNothingToCopy, "errors are not copyable")
		assert.Empty(t, clip.text)
		assert.Equal(t, CopyIdle, c.Snapshot().CopyState)
	})
}

func TestMessagesFor(t *testing.T) {
	assert.Equal(t, "要約", MessagesFor("ja").SummarizeButton)
	assert.Equal(t, "Summarize", MessagesFor("fr").SummarizeButton)
	assert.Equal(t, "本質を実行中...", MessagesFor("ja").processing(types.RequestEssence))
}

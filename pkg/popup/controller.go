// Package popup implements the popup controller: the user-facing state
// machine that sends one request at a time to the orchestrator and shows the
// reply.
//
// Rendering is left to executors (see pkg/executor/tui and pkg/executor/cli);
// they observe the controller through Snapshot and the OnChange hook.
package popup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/entrhq/pagesage/pkg/types"
)

// DefaultCopyResetDelay is how long a copy outcome stays visible.
const DefaultCopyResetDelay = 2 * time.Second

var (
	// ErrBusy is returned when an action is triggered while another is in flight.
	ErrBusy = errors.New("an action is already in progress")

	// ErrNothingToCopy is returned when there is no copyable result.
	ErrNothingToCopy = errors.New("no result to copy")

	errClipboardUnsupported = errors.New("clipboard is not supported on this system")
)

// CopyState is the outcome of the last copy.
type CopyState int

const (
	CopyIdle CopyState = iota
	CopyCopied
	CopyFailed
)

// String returns a readable name.
func (c CopyState) String() string {
	switch c {
	case CopyCopied:
		return "copied"
	case CopyFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Sender is the messaging capability the popup needs.
type Sender interface {
	SendMessage(ctx context.Context, req types.Request) (types.PopupReply, error)
}

// State is a snapshot of the popup.
type State struct {
	ResultText string
	IsLoading  bool
	IsError    bool
	CopyState  CopyState
	ErrorKind  types.ErrorKind
	// Placeholder is true while ResultText is the initial prompt.
	Placeholder bool
}

// Controller holds the popup state. It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	state      State
	sender     Sender
	clipboard  Clipboard
	messages   Messages
	resetDelay time.Duration
	resetTimer *time.Timer
	onChange   func(State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClipboard sets the clipboard used by CopyResult.
func WithClipboard(c Clipboard) Option {
	return func(ctl *Controller) {
		ctl.clipboard = c
	}
}

// WithMessages sets the text catalogue.
func WithMessages(m Messages) Option {
	return func(ctl *Controller) {
		ctl.messages = m
	}
}

// WithCopyResetDelay sets how long a copy outcome is shown before reverting.
func WithCopyResetDelay(d time.Duration) Option {
	return func(ctl *Controller) {
		ctl.resetDelay = d
	}
}

// WithOnChange registers a hook called after every state transition. It is
// called without the controller's lock held.
func WithOnChange(fn func(State)) Option {
	return func(ctl *Controller) {
		ctl.onChange = fn
	}
}

// NewController creates a popup. A nil sender means the messaging capability
// is unavailable; every action then fails immediately.
func NewController(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender:     sender,
		clipboard:  SystemClipboard{},
		messages:   MessagesFor("en"),
		resetDelay: DefaultCopyResetDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{ResultText: c.messages.Initial, Placeholder: true}
	return c
}

// Messages returns the controller's catalogue.
func (c *Controller) Messages() Messages {
	return c.messages
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// TriggerAction sends one request of kind and waits for its reply.
//
// While it runs IsLoading is true; it is cleared exactly once when the call
// settles, whatever the outcome. A second call during that time returns
// ErrBusy without touching the state.
func (c *Controller) TriggerAction(ctx context.Context, kind types.RequestKind) error {
	if c.sender == nil {
		c.update(func(s *State) {
			s.ResultText = c.messages.APIUnavailable
			s.IsError = true
			s.ErrorKind = types.ErrorKindAPIUnavailable
			s.Placeholder = false
		})
		return nil
	}

	c.mu.Lock()
	if c.state.IsLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state.IsLoading = true
	c.state.IsError = false
	c.state.ErrorKind = ""
	c.state.Placeholder = false
	c.state.ResultText = c.messages.processing(kind)
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)

	var (
		text      string
		isError   bool
		errorKind types.ErrorKind
	)
	defer func() {
		c.update(func(s *State) {
			s.ResultText = text
			s.IsError = isError
			s.ErrorKind = errorKind
			s.IsLoading = false
		})
	}()

	reply, err := c.sender.SendMessage(ctx, types.NewRequest(kind))
	switch {
	case err != nil:
		text, isError = c.messages.ErrorPrefix+err.Error(), true
		errorKind = types.ErrorKindInternal
		if errors.Is(err, context.Canceled) {
			errorKind = types.ErrorKindCanceled
		} else if errors.Is(err, context.DeadlineExceeded) {
			errorKind = types.ErrorKindTimeout
		}
	case reply.Error != nil:
		text, isError, errorKind = reply.Summary, true, reply.Error.Kind
		switch {
		case text != "":
		case reply.Error.Message != "":
			text = c.messages.ErrorPrefix + reply.Error.Message
		default:
			text = c.messages.UnknownError
		}
	case reply.Summary != "":
		text = reply.Summary
	default:
		text, isError, errorKind = c.messages.responseFailed(kind), true, types.ErrorKindInternal
	}
	return nil
}

// CanCopy reports whether a real result is on screen.
func (c *Controller) CanCopy() bool {
	s := c.Snapshot()
	return canCopy(s)
}

func canCopy(s State) bool {
	return !s.Placeholder && !s.IsError && !s.IsLoading && s.ResultText != ""
}

// CopyResult copies the result to the clipboard. The copy state shows the
// outcome and reverts to idle after the reset delay.
func (c *Controller) CopyResult() error {
	s := c.Snapshot()
	if !canCopy(s) {
		return ErrNothingToCopy
	}

	err := c.clipboard.WriteText(s.ResultText)
	outcome := CopyCopied
	if err != nil {
		outcome = CopyFailed
	}
	c.update(func(s *State) { s.CopyState = outcome })

	c.mu.Lock()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		// A later copy owns the reset.
		if c.resetTimer != timer {
			c.mu.Unlock()
			return
		}
		c.resetTimer = nil
		c.state.CopyState = CopyIdle
		snapshot := c.state
		c.mu.Unlock()
		c.notify(snapshot)
	})
	c.resetTimer = timer
	c.mu.Unlock()
	return err
}

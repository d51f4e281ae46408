// Package orchestrator implements the background process that turns a popup
// request into generated text.
//
// For each request it resolves the active tab, refuses browser-internal pages,
// makes sure the page extractor is listening (ping, inject when missing),
// fetches the page text, builds the prompt, and calls the text-generation
// service. Every outcome, including failures, becomes exactly one reply.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/entrhq/pagesage/pkg/host"
	"github.com/entrhq/pagesage/pkg/llm"
	"github.com/entrhq/pagesage/pkg/logging"
	"github.com/entrhq/pagesage/pkg/messaging"
	"github.com/entrhq/pagesage/pkg/types"
	"github.com/google/uuid"
)

// Timeouts bounds each suspend point of a request. A zero field disables
// that bound.
type Timeouts struct {
	Ping     time.Duration
	Extract  time.Duration
	Generate time.Duration
}

// DefaultTimeouts returns the bounds used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Ping:     time.Second,
		Extract:  15 * time.Second,
		Generate: 2 * time.Minute,
	}
}

// Orchestrator answers popup requests. It holds only read-only configuration,
// so concurrent Handle calls need no coordination.
type Orchestrator struct {
	host          host.Host
	generator     llm.Generator
	model         string
	guard         *Guard
	timeouts      Timeouts
	language      string
	contentScript string
	log           *logging.Logger
}

var _ messaging.Handler = (*Orchestrator)(nil)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithModel sets the model identifier passed to the generator.
func WithModel(model string) Option {
	return func(o *Orchestrator) {
		o.model = model
	}
}

// WithGuard replaces the restricted-page guard.
func WithGuard(g *Guard) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.guard = g
		}
	}
}

// WithTimeouts sets the per-step deadlines.
func WithTimeouts(t Timeouts) Option {
	return func(o *Orchestrator) {
		o.timeouts = t
	}
}

// WithLanguage selects the language of the restricted-page message.
func WithLanguage(lang string) Option {
	return func(o *Orchestrator) {
		o.language = lang
	}
}

// WithContentScript sets the extractor artifact path passed to injection.
func WithContentScript(path string) Option {
	return func(o *Orchestrator) {
		if path != "" {
			o.contentScript = path
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// New creates an orchestrator over h and generator.
func New(h host.Host, generator llm.Generator, opts ...Option) (*Orchestrator, error) {
	if h == nil {
		return nil, fmt.Errorf("host is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	o := &Orchestrator{
		host:          h,
		generator:     generator,
		guard:         MustDefaultGuard(),
		timeouts:      DefaultTimeouts(),
		language:      "en",
		contentScript: host.ContentScriptPath,
		log:           logging.Discard("orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Accepts reports whether req is a summary or essence request.
func (o *Orchestrator) Accepts(req types.Request) bool {
	return req.Type.Valid()
}

// Handle runs one request to completion and returns its reply. It never
// panics and never returns without a reply.
func (o *Orchestrator) Handle(ctx context.Context, req types.Request) (reply types.PopupReply) {
	requestID := uuid.NewString()[:8]
	started := time.Now()
	o.log.Infof("[%s] %s received", requestID, req.Type)

	defer func() {
		if r := recover(); r != nil {
			o.log.Errorf("[%s] panic: %v", requestID, r)
			reply = types.ErrReply(types.ErrorKindInternal, msgFailurePrefix+fmt.Sprint(r))
		}
		if reply.IsError() {
			o.log.Warnf("[%s] finished with %s after %s: %s", requestID, reply.Error.Kind, time.Since(started), reply.Summary)
		} else {
			o.log.Infof("[%s] finished after %s (%d chars)", requestID, time.Since(started), len(reply.Summary))
		}
	}()

	if !req.Type.Valid() {
		return types.ErrReply(types.ErrorKindInternal, msgFailurePrefix+fmt.Sprintf("unsupported request kind %q", req.Type))
	}

	tab, err := o.host.ActiveTab(ctx)
	if err != nil {
		return o.failure(ctx, types.ErrorKindInternal, fmt.Errorf("query active tab: %w", err))
	}
	if tab == nil || !tab.HasID() {
		return types.ErrReply(types.ErrorKindNoActiveTab, msgNoActiveTab)
	}
	o.log.Debugf("[%s] active tab %d: %s", requestID, tab.ID, tab.URL)

	if o.guard.IsRestricted(tab.URL) {
		return types.ErrReply(types.ErrorKindRestrictedPage, RestrictedPageMessage(o.language))
	}

	presence, err := o.ensureExtractor(ctx, tab.ID)
	if err != nil {
		return o.failure(ctx, types.ErrorKindInternal, err)
	}
	o.log.Debugf("[%s] extractor %s before request", requestID, presence)

	pageText, failed := o.requestText(ctx, tab.ID)
	if failed != nil {
		return *failed
	}

	prompt, err := BuildPrompt(req.Type, pageText)
	if err != nil {
		return o.failure(ctx, types.ErrorKindInternal, err)
	}
	o.log.Debugf("[%s] prompt built (%d chars), calling model %q", requestID, len(prompt), o.model)

	text, err := o.generate(ctx, prompt)
	if err != nil {
		return o.failure(ctx, types.ErrorKindGeneration, err)
	}
	return types.OkReply(text)
}

// ensureExtractor pings the tab and injects the extractor unless it answered.
func (o *Orchestrator) ensureExtractor(ctx context.Context, tabID int) (Presence, error) {
	presence, err := o.checkPresence(ctx, tabID, o.timeouts.Ping)
	if err != nil {
		return presence, err
	}
	if presence == PresencePresent {
		return presence, nil
	}

	if err := o.host.InjectScript(ctx, tabID, o.contentScript); err != nil {
		return presence, fmt.Errorf("inject %s: %w", o.contentScript, err)
	}
	return presence, nil
}

// requestText fetches the page text. The second result is set when the
// request must end with that reply instead.
func (o *Orchestrator) requestText(ctx context.Context, tabID int) (string, *types.PopupReply) {
	extractCtx, cancel := withOptionalTimeout(ctx, o.timeouts.Extract)
	defer cancel()

	reply, err := o.host.SendToTab(extractCtx, tabID, types.PageMessage{Type: types.PageMessageGetText})
	if err != nil {
		failed := o.failure(ctx, types.ErrorKindInternal, err)
		return "", &failed
	}

	if reply.Error != "" {
		failed := types.ErrReply(types.ErrorKindExtraction, msgExtractorPrefix+reply.Error)
		return "", &failed
	}
	if strings.TrimSpace(reply.Text) == "" {
		failed := types.ErrReply(types.ErrorKindExtraction, msgNoText)
		return "", &failed
	}
	return reply.Text, nil
}

func (o *Orchestrator) generate(ctx context.Context, prompt string) (string, error) {
	genCtx, cancel := withOptionalTimeout(ctx, o.timeouts.Generate)
	defer cancel()
	return o.generator.Generate(genCtx, o.model, prompt)
}

// failure converts err into the catch-all reply, keeping deadline expiry and
// caller cancellation distinguishable.
func (o *Orchestrator) failure(ctx context.Context, kind types.ErrorKind, err error) types.PopupReply {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return types.ErrReply(types.ErrorKindCanceled, msgCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return types.ErrReply(types.ErrorKindTimeout, msgTimedOut)
	default:
		return types.ErrReply(kind, msgFailurePrefix+err.Error())
	}
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

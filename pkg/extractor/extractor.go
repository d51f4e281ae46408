// Package extractor implements the page text extractor that runs inside a tab.
//
// It is stateless: each injection creates a fresh Extractor bound to the
// tab's text source, and re-injection simply replaces the listener.
package extractor

import (
	"context"
	"strings"

	"github.com/entrhq/pagesage/pkg/logging"
	"github.com/entrhq/pagesage/pkg/types"
)

// NoTextReason is the error reported when a page has no visible text.
const NoTextReason = "no extractable text found"

// TextSource reads the rendered, visible text of a page.
type TextSource interface {
	VisibleText(ctx context.Context) (string, error)
}

// TextSourceFunc adapts a function to the TextSource interface.
type TextSourceFunc func(ctx context.Context) (string, error)

// VisibleText calls f.
func (f TextSourceFunc) VisibleText(ctx context.Context) (string, error) {
	return f(ctx)
}

// Extractor answers ping and GET_TEXT messages for one tab.
type Extractor struct {
	source TextSource
	log    *logging.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to record text-source failures.
func WithLogger(l *logging.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an extractor reading from source.
func New(source TextSource, opts ...Option) *Extractor {
	e := &Extractor{
		source: source,
		log:    logging.Discard("extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleMessage answers msg. It returns false for message kinds it does not know.
func (e *Extractor) HandleMessage(ctx context.Context, msg types.PageMessage) (types.PageTextReply, bool) {
	switch msg.Type {
	case types.PageMessagePing:
		return types.PageTextReply{}, true
	case types.PageMessageGetText:
		return e.GetText(ctx), true
	default:
		return types.PageTextReply{}, false
	}
}

// GetText snapshots the page's visible text. The text is returned untouched;
// only the emptiness check trims it.
func (e *Extractor) GetText(ctx context.Context) types.PageTextReply {
	text, err := e.source.VisibleText(ctx)
	if err != nil {
		// A source that cannot be read is reported like an empty page.
		e.log.Warnf("reading visible text failed: %v", err)
		return types.ErrorReply(NoTextReason)
	}

	if strings.TrimSpace(text) == "" {
		return types.ErrorReply(NoTextReason)
	}
	return types.TextReply(text)
}

package browser

import (
	"context"
	_ "embed"
)

// Default viewport dimensions for launched browsers.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Page scripts. Each is an arrow function passed to Evaluate.
const (
	markerScript  = `() => typeof window.__pagesage === 'object' && window.__pagesage !== null`
	getTextScript = `() => window.__pagesage.getText()`
	focusScript   = `() => document.visibilityState === 'visible' && document.hasFocus()`
)

//go:embed scripts/content.js
var contentScript string

// Options configures how the browser is obtained.
type Options struct {
	// Headless hides a launched browser. Ignored when attaching.
	Headless bool
	// CDPEndpoint attaches to a running Chromium when set.
	CDPEndpoint string
	// StartURL is opened in the first tab of a launched browser.
	StartURL string
}

// page is the subset of playwright.Page the host uses.
type page interface {
	URL() string
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
	IsClosed() bool
}

// await runs fn and returns early with ctx's error if ctx ends first.
// Playwright calls are not context-aware, so fn may outlive the caller.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

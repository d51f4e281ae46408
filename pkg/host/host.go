// Package host defines the browser capabilities the orchestrator consumes:
// resolving the active tab, injecting the page extractor, and messaging it.
//
// Implementations live in subpackages: browser drives a real Chromium through
// playwright, static serves a single URL fetched over HTTP.
package host

import (
	"context"
	"errors"

	"github.com/entrhq/pagesage/pkg/types"
)

// TabIDNone marks a tab that has no stable identifier.
const TabIDNone = -1

// ContentScriptPath is the build-relative path of the page extractor artifact.
const ContentScriptPath = "scripts/content.js"

var (
	// ErrNoReceiver is returned when no extractor listens in the target tab.
	ErrNoReceiver = errors.New("could not establish connection: receiving end does not exist")

	// ErrNoResponse is returned when the tab's listener declined to answer.
	ErrNoResponse = errors.New("the message port closed before a response was received")

	// ErrTabNotFound is returned when the tab id does not refer to an open tab.
	ErrTabNotFound = errors.New("no tab with the given id")

	// ErrScriptNotFound is returned when an injection names an unknown file.
	ErrScriptNotFound = errors.New("content script file not found")
)

// Tab is a browser tab as seen by the orchestrator.
type Tab struct {
	ID  int
	URL string
}

// HasID reports whether the tab can be addressed.
func (t Tab) HasID() bool {
	return t.ID != TabIDNone
}

// Tabs resolves the focused tab of the current window.
type Tabs interface {
	// ActiveTab returns the focused tab, or nil when there is none.
	ActiveTab(ctx context.Context) (*Tab, error)
}

// Scripting loads the page extractor into a tab.
type Scripting interface {
	// InjectScript evaluates file in the tab and starts its listener.
	// Injecting into a tab that already runs the extractor is harmless.
	InjectScript(ctx context.Context, tabID int, file string) error
}

// Messenger delivers one-shot messages to the extractor in a tab.
type Messenger interface {
	SendToTab(ctx context.Context, tabID int, msg types.PageMessage) (types.PageTextReply, error)
}

// Host bundles every capability the orchestrator needs.
type Host interface {
	Tabs
	Scripting
	Messenger
}

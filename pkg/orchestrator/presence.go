package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/entrhq/pagesage/pkg/types"
)

// Presence is the outcome of pinging a tab's extractor.
type Presence int

const (
	// PresenceUnknown means the ping did not settle before its deadline.
	PresenceUnknown Presence = iota
	// PresencePresent means the extractor acknowledged the ping.
	PresencePresent
	// PresenceAbsent means the tab rejected the ping.
	PresenceAbsent
)

// String returns a readable name for logs.
func (p Presence) String() string {
	switch p {
	case PresencePresent:
		return "present"
	case PresenceAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// checkPresence pings the extractor in tabID, bounded by timeout (zero means no bound).
// It returns an error only when the caller's own context has ended.
func (o *Orchestrator) checkPresence(ctx context.Context, tabID int, timeout time.Duration) (Presence, error) {
	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	_, err := o.host.SendToTab(pingCtx, tabID, types.PageMessage{Type: types.PageMessagePing})
	switch {
	case err == nil:
		return PresencePresent, nil
	case ctx.Err() != nil:
		return PresenceUnknown, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return PresenceUnknown, nil
	default:
		return PresenceAbsent, nil
	}
}

package badge

import (
	"context"

	"campus-notify/internal/event"
	"campus-notify/internal/view"
)

// Reconciler keeps the unread badge consistent with the server and turns
// notification clicks into navigation actions.
type Reconciler interface {
	// Apply replaces the displayed state from a whole counts object,
	// regardless of source (push or poll). Last write wins, applied
	// atomically; absent types are zero.
	Apply(ctx context.Context, counts event.Counts)

	// Refresh polls the server for authoritative counts. At most one
	// refresh is in flight; concurrent calls coalesce into it.
	Refresh(ctx context.Context) error

	// Snapshot returns the current displayed state.
	Snapshot() State

	// Resolve maps a notification to its navigation target. Total over
	// the type enum plus a dashboard default.
	Resolve(ev event.Event) view.Target

	// Click handles a user click on a notification: mark read on the
	// server, refresh the badge, then navigate. Never decrements the
	// badge by guesswork before the server confirms.
	Click(ctx context.Context, ev event.Event) error

	// ClearAll marks every notification read server-side, then refreshes.
	ClearAll(ctx context.Context) error
}

// Observer is notified after each applied state change. The status endpoint
// and toast layer subscribe through this.
type Observer func(State)

package router

import (
	"context"

	"campus-notify/internal/event"
)

// Router classifies incoming push payloads and fans them out to the sinks.
// Both entry points are safe to call from the socket read pump: they log and
// drop malformed input, and never panic upward.
type Router interface {
	// HandlePush processes a full notification push.
	HandlePush(ctx context.Context, payload []byte)

	// HandleCounts processes a counts-only push. Idempotent.
	HandleCounts(ctx context.Context, payload []byte)

	// Stats returns dispatch counters.
	Stats() Stats
}

// Sink is one independent consumer of a routed event. A failing sink must
// not prevent its siblings from running.
type Sink interface {
	Notify(ctx context.Context, ev event.Event) error
}

// CountsSink receives whole counts objects (the badge reconciler).
type CountsSink interface {
	Apply(ctx context.Context, counts event.Counts)
}

// Stats are the router's dispatch counters.
type Stats struct {
	EventsDelivered int64 `json:"events_delivered"`
	EventsDropped   int64 `json:"events_dropped"`
	CountsApplied   int64 `json:"counts_applied"`
	SinkFailures    int64 `json:"sink_failures"`
}

package usecase

import (
	"context"

	"campus-notify/internal/event"
	"campus-notify/internal/router"
)

// HandlePush validates a full notification push and fans it out to every
// sink. Malformed payloads are logged and dropped; they must never throw
// back into the read pump.
func (r *implRouter) HandlePush(ctx context.Context, payload []byte) {
	ev, err := event.DecodeEvent(payload)
	if err != nil {
		r.eventsDropped.Add(1)
		r.logger.Warnf(ctx, "dropping malformed push event: %v", err)
		return
	}

	if !event.IsValidType(ev.Type) {
		// Unknown types still render, as system notifications.
		r.logger.Debugf(ctx, "unknown event type %q on %s, rendering as system", ev.Type, ev.ID)
	}

	for _, s := range r.sinks {
		r.dispatch(ctx, s, ev)
	}
	r.eventsDelivered.Add(1)
}

// HandleCounts forwards a counts-only push to the badge reconciler as one
// whole object. Applying the same payload twice yields the same state.
func (r *implRouter) HandleCounts(ctx context.Context, payload []byte) {
	counts, err := event.DecodeCounts(payload)
	if err != nil {
		r.eventsDropped.Add(1)
		r.logger.Warnf(ctx, "dropping malformed counts push: %v", err)
		return
	}

	if r.counts != nil {
		r.counts.Apply(ctx, counts)
		r.countsApplied.Add(1)
	}
}

// Stats returns dispatch counters.
func (r *implRouter) Stats() router.Stats {
	return router.Stats{
		EventsDelivered: r.eventsDelivered.Load(),
		EventsDropped:   r.eventsDropped.Load(),
		CountsApplied:   r.countsApplied.Load(),
		SinkFailures:    r.sinkFailures.Load(),
	}
}

// dispatch runs one sink with full isolation: errors are counted and logged,
// panics are recovered at the sink boundary.
func (r *implRouter) dispatch(ctx context.Context, s NamedSink, ev event.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.sinkFailures.Add(1)
			r.logger.Errorf(ctx, "sink %s panicked on event %s: %v", s.Name, ev.ID, rec)
		}
	}()

	if err := s.Sink.Notify(ctx, ev); err != nil {
		r.sinkFailures.Add(1)
		r.logger.Warnf(ctx, "sink %s failed on event %s: %v", s.Name, ev.ID, err)
	}
}

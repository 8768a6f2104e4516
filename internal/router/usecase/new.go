package usecase

import (
	"sync/atomic"

	"campus-notify/internal/router"
	"campus-notify/pkg/log"
)

// NamedSink pairs a sink with the name used in logs and stats.
type NamedSink struct {
	Name string
	Sink router.Sink
}

// implRouter implements router.Router.
type implRouter struct {
	sinks  []NamedSink
	counts router.CountsSink
	logger log.Logger

	eventsDelivered atomic.Int64
	eventsDropped   atomic.Int64
	countsApplied   atomic.Int64
	sinkFailures    atomic.Int64
}

// New creates the event router. Sinks run in registration order; each is
// isolated so one failure never reaches its siblings.
func New(logger log.Logger, counts router.CountsSink, sinks ...NamedSink) router.Router {
	r := &implRouter{counts: counts, logger: logger}
	for _, s := range sinks {
		if s.Sink != nil {
			r.sinks = append(r.sinks, s)
		}
	}
	return r
}

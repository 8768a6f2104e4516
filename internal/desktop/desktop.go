// Package desktop is the OS-level notification sink. Availability is probed
// lazily on first use; when the platform offers no notification surface the
// sink degrades to a silent no-op. It must never fail the pipeline.
package desktop

import (
	"context"
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"campus-notify/internal/event"
	"campus-notify/pkg/log"
)

// notifyFunc matches beeep.Notify; replaced in tests.
type notifyFunc func(title, message, appIcon string) error

// Sink delivers events as native OS notifications.
type Sink struct {
	appName string
	icon    string
	logger  log.Logger
	notify  notifyFunc

	unavailable atomic.Bool
}

// New creates a desktop Sink. No availability check happens here; the first
// Notify call probes lazily.
func New(appName, icon string, logger log.Logger) *Sink {
	return &Sink{
		appName: appName,
		icon:    icon,
		logger:  logger,
		notify:  beeep.Notify,
	}
}

// Notify shows a native notification for the event. The first delivery
// failure marks the sink unavailable and every later call no-ops silently;
// the error never propagates to sibling sinks.
func (s *Sink) Notify(ctx context.Context, ev event.Event) error {
	if s.unavailable.Load() {
		return nil
	}

	title := ev.Title
	if s.appName != "" {
		title = s.appName + ": " + ev.Title
	}

	if err := s.notify(title, ev.Message, s.icon); err != nil {
		s.unavailable.Store(true)
		s.logger.Infof(ctx, "desktop notifications unavailable, toast only from now on: %v", err)
	}
	return nil
}

// Available reports whether native delivery is still attempted.
func (s *Sink) Available() bool {
	return !s.unavailable.Load()
}

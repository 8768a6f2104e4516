// Package toast is the in-app notification sink: it presents events through a
// pluggable presenter and auto-dismisses them after a fixed duration unless
// the user dismisses or clicks first.
package toast

import (
	"context"
	"sync"
	"time"

	"campus-notify/internal/badge"
	"campus-notify/internal/event"
	"campus-notify/pkg/log"
)

// DefaultDuration is how long a toast stays up without interaction.
const DefaultDuration = 8 * time.Second

// Toast is one presented notification.
type Toast struct {
	Event event.Event
	Icon  string
	Color string
}

// Presenter renders toasts. Concrete presentation is owned by the embedding
// application; tests plug in fakes.
type Presenter interface {
	Show(t Toast) error
	Hide(id string)
}

// Manager owns toast lifecycle: presentation, auto-dismiss timers, and click
// routing through the badge reconciler.
type Manager struct {
	presenter  Presenter
	reconciler badge.Reconciler
	duration   time.Duration
	logger     log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a toast Manager. A zero duration falls back to DefaultDuration.
func New(presenter Presenter, reconciler badge.Reconciler, duration time.Duration, logger log.Logger) *Manager {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Manager{
		presenter:  presenter,
		reconciler: reconciler,
		duration:   duration,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
	}
}

// Notify presents the event and arms its auto-dismiss timer.
func (m *Manager) Notify(ctx context.Context, ev event.Event) error {
	d := event.Describe(ev.Type)
	if err := m.presenter.Show(Toast{Event: ev, Icon: d.Icon, Color: d.Color}); err != nil {
		return err
	}

	m.mu.Lock()
	if old, ok := m.timers[ev.ID]; ok {
		old.Stop()
	}
	m.timers[ev.ID] = time.AfterFunc(m.duration, func() {
		m.expire(ev.ID)
	})
	m.mu.Unlock()

	return nil
}

// Click cancels the auto-dismiss timer, hides the toast and routes the click
// through the reconciler (mark read, refresh, navigate).
func (m *Manager) Click(ctx context.Context, ev event.Event) error {
	m.cancel(ev.ID)
	m.presenter.Hide(ev.ID)
	return m.reconciler.Click(ctx, ev)
}

// Dismiss cancels the timer and hides the toast without navigating.
func (m *Manager) Dismiss(id string) {
	m.cancel(id)
	m.presenter.Hide(id)
}

// Active returns the number of toasts whose timers are still armed.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manager) expire(id string) {
	m.mu.Lock()
	delete(m.timers, id)
	m.mu.Unlock()
	m.presenter.Hide(id)
}

func (m *Manager) cancel(id string) {
	m.mu.Lock()
	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
	m.mu.Unlock()
}

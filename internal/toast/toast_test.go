package toast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-notify/internal/badge"
	"campus-notify/internal/event"
	"campus-notify/internal/view"
	"campus-notify/pkg/log"
)

type fakePresenter struct {
	mu      sync.Mutex
	shown   []Toast
	hidden  []string
	showErr error
}

func (p *fakePresenter) Show(t Toast) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showErr != nil {
		return p.showErr
	}
	p.shown = append(p.shown, t)
	return nil
}

func (p *fakePresenter) Hide(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden = append(p.hidden, id)
}

func (p *fakePresenter) hiddenIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.hidden...)
}

type fakeReconciler struct {
	mu      sync.Mutex
	clicked []event.Event
}

func (r *fakeReconciler) Apply(ctx context.Context, counts event.Counts) {}
func (r *fakeReconciler) Refresh(ctx context.Context) error              { return nil }
func (r *fakeReconciler) Snapshot() badge.State                          { return badge.State{} }
func (r *fakeReconciler) Resolve(ev event.Event) view.Target             { return view.Target{} }
func (r *fakeReconciler) ClearAll(ctx context.Context) error             { return nil }

func (r *fakeReconciler) Click(ctx context.Context, ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicked = append(r.clicked, ev)
	return nil
}

func (r *fakeReconciler) clicks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clicked)
}

func TestNotifyPresentsWithDescriptor(t *testing.T) {
	presenter := &fakePresenter{}
	m := New(presenter, &fakeReconciler{}, time.Minute, log.NewNop())

	ev := event.Event{ID: "n1", Type: event.TypeGrades, Title: "graded"}
	if err := m.Notify(context.Background(), ev); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(presenter.shown) != 1 {
		t.Fatalf("shown %d toasts, want 1", len(presenter.shown))
	}
	d := event.Describe(event.TypeGrades)
	if presenter.shown[0].Icon != d.Icon || presenter.shown[0].Color != d.Color {
		t.Errorf("toast styling = (%q, %q), want (%q, %q)",
			presenter.shown[0].Icon, presenter.shown[0].Color, d.Icon, d.Color)
	}
	if m.Active() != 1 {
		t.Errorf("Active() = %d, want 1", m.Active())
	}
}

func TestAutoDismiss(t *testing.T) {
	presenter := &fakePresenter{}
	m := New(presenter, &fakeReconciler{}, 30*time.Millisecond, log.NewNop())

	m.Notify(context.Background(), event.Event{ID: "n1", Type: event.TypeMessage, Title: "hi"})

	time.Sleep(100 * time.Millisecond)

	// Expected: the timer fired and hid the toast.
	if hidden := presenter.hiddenIDs(); len(hidden) != 1 || hidden[0] != "n1" {
		t.Errorf("hidden = %v, want [n1]", hidden)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, want 0", m.Active())
	}
}

func TestClickCancelsTimerAndRoutes(t *testing.T) {
	presenter := &fakePresenter{}
	reconciler := &fakeReconciler{}
	m := New(presenter, reconciler, 30*time.Millisecond, log.NewNop())

	ev := event.Event{ID: "n1", Type: event.TypeMessage, Title: "hi"}
	m.Notify(context.Background(), ev)
	if err := m.Click(context.Background(), ev); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	if reconciler.clicks() != 1 {
		t.Errorf("reconciler clicks = %d, want 1", reconciler.clicks())
	}

	time.Sleep(100 * time.Millisecond)

	// The canceled timer must not hide a second time.
	if hidden := presenter.hiddenIDs(); len(hidden) != 1 {
		t.Errorf("hidden = %v, want exactly one hide from the click", hidden)
	}
}

func TestDismissWithoutNavigation(t *testing.T) {
	presenter := &fakePresenter{}
	reconciler := &fakeReconciler{}
	m := New(presenter, reconciler, time.Minute, log.NewNop())

	m.Notify(context.Background(), event.Event{ID: "n1", Type: event.TypeSystem, Title: "maintenance"})
	m.Dismiss("n1")

	if hidden := presenter.hiddenIDs(); len(hidden) != 1 || hidden[0] != "n1" {
		t.Errorf("hidden = %v, want [n1]", hidden)
	}
	if reconciler.clicks() != 0 {
		t.Errorf("reconciler clicks = %d, want 0", reconciler.clicks())
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, want 0", m.Active())
	}
}

func TestNotifySamePushTwiceRearmsTimer(t *testing.T) {
	presenter := &fakePresenter{}
	m := New(presenter, &fakeReconciler{}, time.Minute, log.NewNop())

	ev := event.Event{ID: "n1", Type: event.TypeMessage, Title: "hi"}
	m.Notify(context.Background(), ev)
	m.Notify(context.Background(), ev)

	// One armed timer per id, not two.
	if m.Active() != 1 {
		t.Errorf("Active() = %d, want 1", m.Active())
	}
}

func TestNotifyShowFailureSurfaces(t *testing.T) {
	presenter := &fakePresenter{showErr: errors.New("display gone")}
	m := New(presenter, &fakeReconciler{}, time.Minute, log.NewNop())

	err := m.Notify(context.Background(), event.Event{ID: "n1", Type: event.TypeMessage, Title: "hi"})
	if err == nil {
		t.Error("Notify() error = nil, want presenter failure")
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after a failed show", m.Active())
	}
}

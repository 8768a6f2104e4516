package desktop

import (
	"context"
	"errors"
	"testing"

	"campus-notify/internal/event"
	"campus-notify/pkg/log"
)

func TestNotifyDelivers(t *testing.T) {
	var gotTitle, gotMessage string
	s := New("Campus Notify", "", log.NewNop())
	s.notify = func(title, message, appIcon string) error {
		gotTitle, gotMessage = title, message
		return nil
	}

	err := s.Notify(context.Background(), event.Event{
		ID:      "n1",
		Type:    event.TypeMessage,
		Title:   "new message",
		Message: "see me after class",
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if gotTitle != "Campus Notify: new message" {
		t.Errorf("title = %q", gotTitle)
	}
	if gotMessage != "see me after class" {
		t.Errorf("message = %q", gotMessage)
	}
	if !s.Available() {
		t.Error("Available() = false after a successful delivery")
	}
}

func TestNotifyDegradesOnFirstFailure(t *testing.T) {
	calls := 0
	s := New("", "", log.NewNop())
	s.notify = func(title, message, appIcon string) error {
		calls++
		return errors.New("no notification daemon")
	}

	ev := event.Event{ID: "n1", Type: event.TypeSystem, Title: "maintenance"}

	// The failure never propagates; sibling sinks keep running.
	if err := s.Notify(context.Background(), ev); err != nil {
		t.Fatalf("Notify() error = %v, want nil", err)
	}
	if s.Available() {
		t.Error("Available() = true after a delivery failure")
	}

	// Every later call is a silent no-op.
	s.Notify(context.Background(), ev)
	s.Notify(context.Background(), ev)
	if calls != 1 {
		t.Errorf("delivery attempts = %d, want 1", calls)
	}
}

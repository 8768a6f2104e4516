package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-notify/internal/api"
	"campus-notify/internal/badge"
	"campus-notify/internal/event"
	"campus-notify/internal/session"
	"campus-notify/internal/view"
	"campus-notify/pkg/log"
)

type fakeAPI struct {
	mu sync.Mutex

	counts    event.Counts
	countsErr error
	delay     time.Duration

	unreadCalls  int
	markedRead   []string
	markAllCalls int
	markErr      error
}

func (f *fakeAPI) Identity(ctx context.Context) (session.Identity, error) {
	return session.Identity{ID: "u1"}, nil
}

func (f *fakeAPI) UnreadCounts(ctx context.Context) (event.Counts, error) {
	f.mu.Lock()
	f.unreadCalls++
	delay := f.delay
	counts, err := f.counts, f.countsErr
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return counts, err
}

func (f *fakeAPI) Notifications(ctx context.Context, limit, offset int) (api.Page, error) {
	return api.Page{}, nil
}

func (f *fakeAPI) MarkRead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.markedRead = append(f.markedRead, id)
	return nil
}

func (f *fakeAPI) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.markAllCalls++
	return nil
}

func (f *fakeAPI) unreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unreadCalls
}

// recordingBinding binds every section to one handler that records targets.
func recordingBinding(t *testing.T) (*view.Binding, *[]view.Target) {
	t.Helper()

	var mu sync.Mutex
	targets := &[]view.Target{}
	record := func(ctx context.Context, target view.Target) error {
		mu.Lock()
		defer mu.Unlock()
		*targets = append(*targets, target)
		return nil
	}

	handlers := map[event.Section]view.Handler{}
	for _, section := range []event.Section{
		event.SectionMessages,
		event.SectionAnnouncements,
		event.SectionEnrollment,
		event.SectionGrades,
		event.SectionDashboard,
	} {
		handlers[section] = record
	}

	binding, err := view.NewBinding(view.Config{Handlers: handlers}, log.NewNop())
	if err != nil {
		t.Fatalf("NewBinding() error = %v", err)
	}
	return binding, targets
}

func TestApplyDisplayCap(t *testing.T) {
	binding, _ := recordingBinding(t)
	r := New(&fakeAPI{}, binding, log.NewNop())

	tests := []struct {
		total       int
		wantText    string
		wantVisible bool
	}{
		{0, "0", false},
		{5, "5", true},
		{99, "99", true},
		{100, "99+", true},
		{150, "99+", true},
	}
	for _, tt := range tests {
		r.Apply(context.Background(), event.Counts{Total: tt.total})

		snap := r.Snapshot()
		if snap.Text() != tt.wantText {
			t.Errorf("Text() after total=%d = %q, want %q", tt.total, snap.Text(), tt.wantText)
		}
		if snap.Visible() != tt.wantVisible {
			t.Errorf("Visible() after total=%d = %v, want %v", tt.total, snap.Visible(), tt.wantVisible)
		}
	}
}

func TestApplyZeroesAbsentTypes(t *testing.T) {
	binding, _ := recordingBinding(t)
	r := New(&fakeAPI{}, binding, log.NewNop())

	r.Apply(context.Background(), event.Counts{
		Total:  3,
		ByType: map[event.Type]int{event.TypeMessage: 3},
	})
	r.Apply(context.Background(), event.Counts{
		Total:  2,
		ByType: map[event.Type]int{event.TypeGrades: 2},
	})

	snap := r.Snapshot()

	// A type the server stopped reporting must drop to zero.
	if got := snap.Of(event.TypeMessage); got != 0 {
		t.Errorf("Of(message) = %d, want 0", got)
	}
	if got := snap.Of(event.TypeGrades); got != 2 {
		t.Errorf("Of(grades) = %d, want 2", got)
	}
}

func TestRefreshSingleFlight(t *testing.T) {
	binding, _ := recordingBinding(t)
	apiClient := &fakeAPI{
		counts: event.Counts{Total: 7},
		delay:  100 * time.Millisecond,
	}
	r := New(apiClient, binding, log.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Refresh(context.Background())
		}()
	}
	wg.Wait()

	// Concurrent refreshes coalesce into one request.
	if got := apiClient.unreadCount(); got != 1 {
		t.Errorf("unread count polls = %d, want 1", got)
	}
	if snap := r.Snapshot(); snap.Total != 7 {
		t.Errorf("Total = %d, want 7", snap.Total)
	}
}

func TestRefreshFailureKeepsState(t *testing.T) {
	binding, _ := recordingBinding(t)
	apiClient := &fakeAPI{counts: event.Counts{Total: 4}}
	r := New(apiClient, binding, log.NewNop())

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	apiClient.mu.Lock()
	apiClient.countsErr = errors.New("boom")
	apiClient.mu.Unlock()

	if err := r.Refresh(context.Background()); err == nil {
		t.Error("Refresh() error = nil, want error")
	}

	// The last good state stays displayed.
	if snap := r.Snapshot(); snap.Total != 4 {
		t.Errorf("Total = %d, want 4", snap.Total)
	}
}

func TestClickMarksReadThenNavigates(t *testing.T) {
	binding, targets := recordingBinding(t)
	apiClient := &fakeAPI{counts: event.Counts{Total: 1}}
	r := New(apiClient, binding, log.NewNop())

	ev := event.Event{
		ID:       "n1",
		Type:     event.TypeMessage,
		Title:    "new message",
		SenderID: "teacher-9",
	}
	if err := r.Click(context.Background(), ev); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	if len(apiClient.markedRead) != 1 || apiClient.markedRead[0] != "n1" {
		t.Errorf("markedRead = %v, want [n1]", apiClient.markedRead)
	}
	// The badge only moves after the server confirmed.
	if got := apiClient.unreadCount(); got != 1 {
		t.Errorf("unread polls after click = %d, want 1", got)
	}
	if len(*targets) != 1 {
		t.Fatalf("navigations = %d, want 1", len(*targets))
	}
	target := (*targets)[0]
	if target.Section != event.SectionMessages {
		t.Errorf("Section = %s, want %s", target.Section, event.SectionMessages)
	}
	if target.PartnerID != "teacher-9" {
		t.Errorf("PartnerID = %q, want %q", target.PartnerID, "teacher-9")
	}
}

func TestClickReadEventNavigatesOnly(t *testing.T) {
	binding, targets := recordingBinding(t)
	apiClient := &fakeAPI{}
	r := New(apiClient, binding, log.NewNop())

	ev := event.Event{ID: "n2", Type: event.TypeGrades, Title: "graded", Read: true}
	if err := r.Click(context.Background(), ev); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	if len(apiClient.markedRead) != 0 {
		t.Errorf("markedRead = %v, want none", apiClient.markedRead)
	}
	if got := apiClient.unreadCount(); got != 0 {
		t.Errorf("unread polls = %d, want 0", got)
	}
	if len(*targets) != 1 || (*targets)[0].Section != event.SectionGrades {
		t.Errorf("targets = %v, want one grades navigation", *targets)
	}
}

func TestClickMarkReadFailureStillNavigates(t *testing.T) {
	binding, targets := recordingBinding(t)
	apiClient := &fakeAPI{markErr: errors.New("server down")}
	r := New(apiClient, binding, log.NewNop())

	ev := event.Event{ID: "n3", Type: event.TypeEnrollment, Title: "waitlist cleared"}
	if err := r.Click(context.Background(), ev); err != nil {
		t.Fatalf("Click() error = %v", err)
	}

	// Navigation must not be blocked by a failed read receipt.
	if len(*targets) != 1 {
		t.Errorf("navigations = %d, want 1", len(*targets))
	}
}

func TestClearAllConfirmedOnly(t *testing.T) {
	binding, _ := recordingBinding(t)
	apiClient := &fakeAPI{markErr: errors.New("unavailable")}
	r := New(apiClient, binding, log.NewNop())

	r.Apply(context.Background(), event.Counts{Total: 9})

	if err := r.ClearAll(context.Background()); err == nil {
		t.Error("ClearAll() error = nil, want error")
	}
	// Rejected clear leaves the badge untouched.
	if snap := r.Snapshot(); snap.Total != 9 {
		t.Errorf("Total = %d, want 9", snap.Total)
	}

	apiClient.mu.Lock()
	apiClient.markErr = nil
	apiClient.counts = event.Counts{Total: 0}
	apiClient.mu.Unlock()

	if err := r.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if snap := r.Snapshot(); snap.Total != 0 {
		t.Errorf("Total = %d, want 0", snap.Total)
	}
}

func TestObserverNotified(t *testing.T) {
	binding, _ := recordingBinding(t)

	var mu sync.Mutex
	var seen []badge.State
	observer := func(s badge.State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	}

	r := New(&fakeAPI{}, binding, log.NewNop(), observer)
	r.Apply(context.Background(), event.Counts{Total: 3})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0].Total != 3 {
		t.Errorf("observed states = %v, want one with total 3", seen)
	}
}

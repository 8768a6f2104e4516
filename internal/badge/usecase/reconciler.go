package usecase

import (
	"context"

	"campus-notify/internal/badge"
	"campus-notify/internal/event"
)

// Apply replaces the displayed state from a whole counts object. Absent types
// become zero so a per-type indicator cannot stay lit after its count drops.
func (r *implReconciler) Apply(ctx context.Context, counts event.Counts) {
	byType := make(map[event.Type]int, len(counts.ByType))
	for _, t := range event.Types() {
		byType[t] = counts.Of(t)
	}
	// Carry through counts for types this build does not know yet; they
	// still contribute to the total server-side.
	for t, n := range counts.ByType {
		if _, ok := byType[t]; !ok {
			byType[t] = n
		}
	}

	next := badge.State{Total: counts.Total, ByType: byType}

	r.mu.Lock()
	r.state = next
	r.mu.Unlock()

	r.logger.Debugf(ctx, "badge applied: total=%d text=%q", next.Total, next.Text())

	for _, obs := range r.observers {
		obs(next)
	}
}

// Refresh polls the server for authoritative counts. Concurrent calls
// coalesce: while one poll is outstanding the rest are dropped and rely on
// its result.
func (r *implReconciler) Refresh(ctx context.Context) error {
	r.refreshMu.Lock()
	if r.refreshing {
		r.refreshMu.Unlock()
		r.logger.Debug(ctx, "badge refresh coalesced into in-flight poll")
		return nil
	}
	r.refreshing = true
	r.refreshMu.Unlock()

	defer func() {
		r.refreshMu.Lock()
		r.refreshing = false
		r.refreshMu.Unlock()
	}()

	counts, err := r.apiClient.UnreadCounts(ctx)
	if err != nil {
		// A failed poll leaves the previous badge state displayed.
		r.logger.Warnf(ctx, "badge refresh failed: %v", err)
		return err
	}

	r.Apply(ctx, counts)
	return nil
}

// Snapshot returns the current displayed state.
func (r *implReconciler) Snapshot() badge.State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byType := make(map[event.Type]int, len(r.state.ByType))
	for t, n := range r.state.ByType {
		byType[t] = n
	}
	return badge.State{Total: r.state.Total, ByType: byType}
}

// Click marks the notification read server-side, refreshes the badge from the
// server's answer, then navigates. The badge is never decremented locally
// before the server confirms.
func (r *implReconciler) Click(ctx context.Context, ev event.Event) error {
	if !ev.Read && ev.ID != "" {
		if err := r.apiClient.MarkRead(ctx, ev.ID); err != nil {
			r.logger.Warnf(ctx, "mark read failed for %s: %v", ev.ID, err)
		} else if err := r.Refresh(ctx); err != nil {
			r.logger.Warnf(ctx, "refresh after mark read failed: %v", err)
		}
	}

	return r.binding.Activate(ctx, r.Resolve(ev))
}

// ClearAll marks everything read, then refreshes. Only a confirmed server
// response moves the badge to zero.
func (r *implReconciler) ClearAll(ctx context.Context) error {
	if err := r.apiClient.MarkAllRead(ctx); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

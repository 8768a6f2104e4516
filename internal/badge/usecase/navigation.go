package usecase

import (
	"campus-notify/internal/event"
	"campus-notify/internal/view"
)

// Resolve maps a notification to its navigation target through the per-type
// descriptor table. The table is total: an unrecognized type lands on the
// dashboard, never on a dead click.
func (r *implReconciler) Resolve(ev event.Event) view.Target {
	target := view.Target{Section: event.Describe(ev.Type).Section}
	if ev.Type == event.TypeMessage {
		target.PartnerID = ev.SenderID
	}
	return target
}

package api

import (
	"context"

	"campus-notify/internal/event"
	"campus-notify/internal/session"
)

// Client is the HTTP boundary to the enrollment system's notification API.
// Every call is bearer-token authenticated; a 401/403 from any of them clears
// the credential chain and surfaces ErrUnauthorized.
type Client interface {
	// Identity performs the authenticated identity lookup.
	Identity(ctx context.Context) (session.Identity, error)

	// UnreadCounts fetches the authoritative unread totals.
	UnreadCounts(ctx context.Context) (event.Counts, error)

	// Notifications fetches one page of notifications.
	Notifications(ctx context.Context, limit, offset int) (Page, error)

	// MarkRead marks a single notification read by id.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks every notification read.
	MarkAllRead(ctx context.Context) error
}

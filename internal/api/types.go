package api

import (
	"time"

	"campus-notify/internal/event"
)

// Config holds API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Page is one fetched page of notifications plus the server-side total.
type Page struct {
	Events []event.Event
	Total  int
}

// Pagination bounds, matching the server's list endpoint.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ClampLimit normalizes a requested page size into the server's accepted range.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

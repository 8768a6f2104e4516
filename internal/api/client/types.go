package client

import (
	"campus-notify/internal/event"
	"campus-notify/internal/session"
)

// envelope is the server's standard response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// statusResponse is the body of mutation endpoints (mark read, mark all read).
type statusResponse struct {
	envelope
}

// identityResponse wraps the identity lookup payload.
type identityResponse struct {
	envelope
	User session.Identity `json:"user"`
}

// countsResponse wraps the aggregate unread counts payload.
type countsResponse struct {
	envelope
	Total  int                `json:"total"`
	Counts map[event.Type]int `json:"counts"`
}

// pageResponse wraps a page of notifications.
type pageResponse struct {
	envelope
	Notifications []event.Event `json:"notifications"`
	Total         int           `json:"total"`
}

package api

import "errors"

var (
	// ErrUnauthorized is returned on 401/403. The credential store has
	// already been cleared by the time callers see this; retrying with the
	// same token is never correct.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServer is returned on unexpected server responses
	ErrServer = errors.New("server error")

	// ErrNotFound is returned when the referenced notification does not exist
	ErrNotFound = errors.New("notification not found")
)

package session

import "errors"

var (
	// ErrNoCredentials is returned when no credential slot holds a usable token
	ErrNoCredentials = errors.New("no credentials available")

	// ErrUnauthenticated is returned when the server rejected the session token
	ErrUnauthenticated = errors.New("session unauthenticated")

	// ErrIdentityUnavailable is returned when identity cannot be resolved yet
	// (transient; the caller may retry later)
	ErrIdentityUnavailable = errors.New("identity not available")
)

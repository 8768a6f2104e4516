package event

import "errors"

var (
	// ErrInvalidMessage is returned when the envelope format is invalid
	ErrInvalidMessage = errors.New("invalid message format")

	// ErrMalformedEvent is returned when a notification payload lacks required fields
	ErrMalformedEvent = errors.New("malformed notification event")

	// ErrMalformedCounts is returned when a counts payload is unusable
	ErrMalformedCounts = errors.New("malformed counts payload")
)

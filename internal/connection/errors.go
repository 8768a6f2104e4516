package connection

import "errors"

var (
	// ErrAttemptsExhausted is returned when reconnect attempts are used up
	// and the manager is waiting for an external Wake
	ErrAttemptsExhausted = errors.New("reconnect attempts exhausted")

	// ErrNotConnected is returned when an emit is attempted on a
	// disconnected socket
	ErrNotConnected = errors.New("socket not connected")

	// ErrShutdown is returned when the manager has been shut down
	ErrShutdown = errors.New("connection manager shut down")
)

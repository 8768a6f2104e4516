package connection

import "context"

// Manager owns at most one live socket per process, authenticates it against
// the current session and recovers from drops without duplicating listeners.
type Manager interface {
	// Initialize is the idempotent entry point: if an initialization is
	// already in flight it returns immediately. An unresolved identity is
	// not an error; a retry is scheduled and Initialize returns nil.
	Initialize(ctx context.Context) error

	// Wake re-triggers connection after the manager entered the failed
	// state (the page-visibility analog). No-op in any other state.
	Wake()

	// State returns the current lifecycle state.
	State() State

	// Stats returns a snapshot for the status endpoint.
	Stats() Stats

	// Shutdown closes the socket and stops all timers.
	Shutdown(ctx context.Context) error
}

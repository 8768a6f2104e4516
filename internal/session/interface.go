package session

import "context"

// Manager resolves and caches the current session identity.
type Manager interface {
	// Resolve returns the current identity, fetching it from the server if
	// it is not cached yet. Returns ErrIdentityUnavailable on transient
	// failure and ErrUnauthenticated when the server rejected the token.
	Resolve(ctx context.Context) (Identity, error)

	// Current returns the cached identity without any network call.
	Current() (Identity, bool)

	// Invalidate drops the cached identity and clears every credential
	// slot together. Used on 401/403 from any authenticated call.
	Invalidate(ctx context.Context) error
}

// CredentialStore reads the session token from a fixed-priority chain of
// storage slots and clears all slots together on invalidation.
type CredentialStore interface {
	// Token returns the first non-empty, non-expired token in priority
	// order, or ErrNoCredentials.
	Token() (string, error)

	// Clear wipes every slot. Partial clearing is never acceptable: a
	// stale token left in a lower-priority slot would be retried forever.
	Clear() error
}

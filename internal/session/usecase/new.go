package usecase

import (
	"context"
	"sync"

	"campus-notify/internal/session"
	"campus-notify/pkg/log"
)

// IdentityFetcher performs the authenticated identity lookup. Implemented by
// the API client; declared here to keep the dependency direction one-way.
type IdentityFetcher interface {
	Identity(ctx context.Context) (session.Identity, error)
}

// implManager implements session.Manager.
type implManager struct {
	fetcher   IdentityFetcher
	creds     session.CredentialStore
	cache     *stateCache
	logger    log.Logger
	onInvalid func()

	mu       sync.RWMutex
	identity session.Identity
	resolved bool
}

// Option configures the manager.
type Option func(*implManager)

// WithStateFile enables the local state-file fallback cache.
func WithStateFile(path string) Option {
	return func(m *implManager) {
		m.cache = &stateCache{path: path}
	}
}

// WithInvalidateHook registers a callback fired after Invalidate completes.
// The connection manager uses it to tear down an authenticated socket whose
// session is gone.
func WithInvalidateHook(fn func()) Option {
	return func(m *implManager) {
		m.onInvalid = fn
	}
}

// New creates a new session Manager.
func New(fetcher IdentityFetcher, creds session.CredentialStore, logger log.Logger, opts ...Option) session.Manager {
	m := &implManager{
		fetcher: fetcher,
		creds:   creds,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

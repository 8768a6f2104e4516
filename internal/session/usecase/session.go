package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"campus-notify/internal/api"
	"campus-notify/internal/session"
)

// Resolve returns the current identity, fetching it if not cached. A fresh
// identity is written through to the state file so a later start can come up
// before the network does.
func (m *implManager) Resolve(ctx context.Context) (session.Identity, error) {
	if ident, ok := m.Current(); ok {
		return ident, nil
	}

	ident, err := m.fetcher.Identity(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, session.ErrNoCredentials) {
			// Credential chain is already cleared by the API client on
			// 401/403. Drop any stale fallback state too.
			m.dropCache(ctx)
			return session.Identity{}, session.ErrUnauthenticated
		}

		// Transient failure: fall back to the last persisted identity so a
		// flaky network does not block startup.
		if cached, ok := m.loadCache(ctx); ok {
			m.store(cached)
			m.logger.Warnf(ctx, "identity lookup failed (%v); using persisted identity for user %s", err, cached.ID)
			return cached, nil
		}
		return session.Identity{}, session.ErrIdentityUnavailable
	}

	if !session.IsValidRole(ident.Role) {
		m.logger.Warnf(ctx, "identity lookup returned unknown role %q for user %s", ident.Role, ident.ID)
	}

	m.store(ident)
	m.saveCache(ctx, ident)
	return ident, nil
}

// Current returns the cached identity without any network call.
func (m *implManager) Current() (session.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity, m.resolved
}

// Invalidate drops the cached identity and clears every credential slot
// together.
func (m *implManager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	m.identity = session.Identity{}
	m.resolved = false
	m.mu.Unlock()

	m.dropCache(ctx)

	err := m.creds.Clear()
	if err != nil {
		m.logger.Errorf(ctx, "credential clear failed: %v", err)
	}

	if m.onInvalid != nil {
		m.onInvalid()
	}
	return err
}

func (m *implManager) store(ident session.Identity) {
	m.mu.Lock()
	m.identity = ident
	m.resolved = true
	m.mu.Unlock()
}

// --- state file fallback ---

// stateCache persists the last resolved identity, standing in for the
// browser-local-storage copy the portal keeps.
type stateCache struct {
	path string
}

func (m *implManager) loadCache(ctx context.Context) (session.Identity, bool) {
	if m.cache == nil {
		return session.Identity{}, false
	}
	data, err := os.ReadFile(m.cache.path)
	if err != nil {
		return session.Identity{}, false
	}
	var ident session.Identity
	if err := json.Unmarshal(data, &ident); err != nil || ident.ID == "" {
		return session.Identity{}, false
	}
	return ident, true
}

func (m *implManager) saveCache(ctx context.Context, ident session.Identity) {
	if m.cache == nil {
		return
	}
	data, err := json.Marshal(ident)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.cache.path), 0o700); err != nil {
		m.logger.Warnf(ctx, "state dir create failed: %v", err)
		return
	}
	if err := os.WriteFile(m.cache.path, data, 0o600); err != nil {
		m.logger.Warnf(ctx, "state file write failed: %v", err)
	}
}

func (m *implManager) dropCache(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := os.Remove(m.cache.path); err != nil && !os.IsNotExist(err) {
		m.logger.Warnf(ctx, "state file remove failed: %v", err)
	}
}

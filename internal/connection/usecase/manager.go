package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"campus-notify/internal/connection"
	"campus-notify/internal/event"
	"campus-notify/internal/session"
)

// Initialize is the idempotent entry point. A second call while one is in
// flight is a no-op; a call while the socket is already live is a no-op.
func (m *implManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return connection.ErrShutdown
	}
	if m.initializing {
		m.mu.Unlock()
		m.logger.Debug(ctx, "initialization already in flight, skipping")
		return nil
	}
	if m.state.Connected() {
		m.mu.Unlock()
		m.logger.Debug(ctx, "socket already live, skipping initialization")
		return nil
	}

	m.initializing = true
	m.state = connection.StateConnecting

	// Dispose of any prior socket wholesale before dialing a new one so
	// no listener from a previous life can fire into this one.
	old := m.sock
	m.sock = nil
	m.mu.Unlock()

	if old != nil {
		old.close()
	}

	done := false
	defer func() {
		if !done {
			m.clearInitializing()
		}
	}()

	ident, err := m.session.Resolve(ctx)
	if err != nil {
		// Not ready yet (page loaded before login finished, flaky
		// network). Retry after a fixed delay.
		m.logger.Infof(ctx, "identity not resolved (%v), retrying in %s", err, m.cfg.RetryDelay)
		m.mu.Lock()
		m.state = connection.StateDisconnected
		m.lastErr = err
		m.initializing = false
		m.scheduleInitLocked(m.cfg.RetryDelay)
		m.mu.Unlock()
		done = true
		return nil
	}

	token, err := m.creds.Token()
	if err != nil && !errors.Is(err, session.ErrNoCredentials) {
		m.logger.Warnf(ctx, "credential read failed: %v", err)
	}

	sock, err := dialSocket(ctx, m.cfg.URL, token, m.cfg, m.logger)
	if err != nil {
		done = true
		return m.handleConnectError(ctx, err)
	}

	// Bind handlers exactly once per socket object, before the pumps run.
	sock.onMessage = m.handleMessage
	sock.onDisconnect = m.handleDisconnect

	m.mu.Lock()
	m.sock = sock
	m.state = connection.StateConnected
	m.attempts = 0
	m.connectedAt = time.Now()
	m.lastErr = nil
	m.initializing = false
	m.mu.Unlock()
	done = true

	sock.start()
	m.logger.Infof(ctx, "socket connected for user %s", ident.ID)

	m.authenticate(ctx, ident)
	return nil
}

// Wake re-triggers connection from the failed state. The page-visibility
// analog: external, explicit, and the only way out of Failed.
func (m *implManager) Wake() {
	m.mu.Lock()
	if m.shutdown || m.state != connection.StateFailed {
		m.mu.Unlock()
		return
	}
	m.attempts = 0
	m.state = connection.StateDisconnected
	m.mu.Unlock()

	m.logger.Info(context.Background(), "wake: reattempting connection")
	go m.Initialize(context.Background())
}

// State returns the current lifecycle state.
func (m *implManager) State() connection.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stats returns a snapshot for the status endpoint.
func (m *implManager) Stats() connection.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := connection.Stats{
		State:             m.state.String(),
		ReconnectAttempts: m.attempts,
		MessagesReceived:  m.messagesReceived.Load(),
	}
	if m.state.Connected() {
		st.ConnectedAt = m.connectedAt
	}
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	return st
}

// Shutdown closes the socket and stops all timers.
func (m *implManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.shutdown = true
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	sock := m.sock
	m.sock = nil
	m.state = connection.StateDisconnected
	m.mu.Unlock()

	if sock != nil {
		sock.close()
	}
	return nil
}

// authenticate emits the authentication request, only when connected and not
// already authenticated. Calling it when already authenticated is a no-op.
func (m *implManager) authenticate(ctx context.Context, ident session.Identity) {
	m.mu.Lock()
	state := m.state
	sock := m.sock
	m.mu.Unlock()

	if state.Authenticated() {
		m.logger.Debug(ctx, "already authenticated, skipping authenticate emit")
		return
	}
	if !state.Connected() || sock == nil {
		m.logger.Warn(ctx, "authenticate requested while not connected")
		return
	}

	msg, err := event.NewMessage(event.MessageTypeAuthenticate, event.AuthenticatePayload{
		UserID: ident.ID,
		Email:  ident.Email,
	})
	if err != nil {
		m.logger.Errorf(ctx, "build authenticate message: %v", err)
		return
	}
	if err := sock.emit(msg); err != nil {
		m.logger.Warnf(ctx, "authenticate emit failed: %v", err)
	}
}

// handleConnectError applies the exponential backoff policy: delay doubles
// from the base up to the ceiling, bounded by MaxAttempts, after which the
// manager parks in Failed until Wake.
func (m *implManager) handleConnectError(ctx context.Context, err error) error {
	m.mu.Lock()
	m.attempts++
	m.lastErr = err
	m.initializing = false

	if m.attempts >= m.cfg.MaxAttempts {
		m.state = connection.StateFailed
		attempts := m.attempts
		m.mu.Unlock()
		m.logger.Errorf(ctx, "connect failed after %d attempts, giving up until wake: %v", attempts, err)
		return connection.ErrAttemptsExhausted
	}

	m.state = connection.StateDisconnected
	delay := backoffDelay(m.attempts, m.cfg.BackoffBase, m.cfg.BackoffCeiling)
	m.scheduleInitLocked(delay)
	attempt := m.attempts
	m.mu.Unlock()

	m.logger.Warnf(ctx, "connect attempt %d failed (%v), retrying in %s", attempt, err, delay)
	return err
}

// handleMessage routes an inbound envelope. Events from a socket that is no
// longer current are discarded: ordering is never guaranteed across a
// reconnect boundary.
func (m *implManager) handleMessage(s *socket, msg *event.Message) {
	m.mu.Lock()
	current := m.sock == s
	m.mu.Unlock()
	if !current {
		return
	}

	ctx := context.Background()
	m.messagesReceived.Add(1)

	switch msg.Type {
	case event.MessageTypeAuthenticated:
		m.handleAuthenticated(ctx, msg.Payload)

	case event.MessageTypeNotification:
		m.router.HandlePush(ctx, msg.Payload)

	case event.MessageTypeCounts:
		m.router.HandleCounts(ctx, msg.Payload)

	default:
		m.logger.Debugf(ctx, "ignoring envelope type %q", msg.Type)
	}
}

// handleAuthenticated moves Connected to Authenticated and kicks off a badge
// poll to reconcile anything missed while the socket was down.
func (m *implManager) handleAuthenticated(ctx context.Context, payload json.RawMessage) {
	var ack event.AuthenticatedPayload
	if err := json.Unmarshal(payload, &ack); err != nil {
		m.logger.Warnf(ctx, "undecodable authenticated ack: %v", err)
		return
	}

	m.mu.Lock()
	if m.state != connection.StateConnected {
		m.mu.Unlock()
		m.logger.Warnf(ctx, "authenticated ack in state %s, ignoring", m.state)
		return
	}
	m.state = connection.StateAuthenticated
	m.mu.Unlock()

	m.logger.Infof(ctx, "socket authenticated for user %s", ack.UserID)

	if m.badge != nil {
		go func() {
			if err := m.badge.Refresh(context.Background()); err != nil {
				m.logger.Warnf(context.Background(), "post-auth badge reconciliation failed: %v", err)
			}
		}()
	}
}

// handleDisconnect reacts to a transport drop: authenticated collapses with
// connected, and an unexpected drop schedules a re-init after the fixed
// retry delay. A policy-violation close means the server rejected our
// identity; the cached session is invalidated so the next attempt resolves
// a fresh one instead of retrying the same credential.
func (m *implManager) handleDisconnect(s *socket, err error) {
	authRejected := websocket.IsCloseError(err, websocket.ClosePolicyViolation)

	m.mu.Lock()
	if m.sock != s {
		m.mu.Unlock()
		return
	}
	m.sock = nil
	m.state = connection.StateDisconnected
	m.lastErr = err
	shutdown := m.shutdown
	if !shutdown && !authRejected {
		m.scheduleInitLocked(m.cfg.RetryDelay)
	}
	m.mu.Unlock()

	if shutdown {
		return
	}

	ctx := context.Background()
	if authRejected {
		m.logger.Warn(ctx, "server rejected session, invalidating cached identity")
		if invErr := m.session.Invalidate(ctx); invErr != nil {
			m.logger.Errorf(ctx, "session invalidation failed: %v", invErr)
		}
		return
	}

	m.logger.Warnf(ctx, "socket disconnected (%v), reconnecting in %s", err, m.cfg.RetryDelay)
}

// scheduleInitLocked arms the retry timer. Callers hold m.mu.
func (m *implManager) scheduleInitLocked(delay time.Duration) {
	if m.retryTimer != nil {
		m.retryTimer.Stop()
	}
	m.retryTimer = time.AfterFunc(delay, func() {
		if err := m.Initialize(context.Background()); err != nil && !errors.Is(err, connection.ErrShutdown) {
			m.logger.Debugf(context.Background(), "scheduled initialize: %v", err)
		}
	})
}

func (m *implManager) clearInitializing() {
	m.mu.Lock()
	m.initializing = false
	m.mu.Unlock()
}

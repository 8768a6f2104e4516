package connection

import "time"

// State is the lifecycle state of the managed connection.
type State int

const (
	// StateDisconnected is the initial state and the state after any drop.
	StateDisconnected State = iota
	// StateConnecting covers identity resolution and the transport dial.
	StateConnecting
	// StateConnected means the transport is up but not yet authenticated.
	StateConnected
	// StateAuthenticated means the server acknowledged our identity.
	// Reachable only from StateConnected: authenticated implies connected.
	StateAuthenticated
	// StateFailed is entered after exhausting reconnect attempts. Only an
	// external Wake leaves it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Connected reports whether the transport is up in this state.
func (s State) Connected() bool {
	return s == StateConnected || s == StateAuthenticated
}

// Authenticated reports whether the server acknowledged the session.
func (s State) Authenticated() bool {
	return s == StateAuthenticated
}

// Config holds connection manager configuration.
type Config struct {
	// URL is the socket endpoint.
	URL string

	// HandshakeTimeout bounds the transport dial.
	HandshakeTimeout time.Duration

	// RetryDelay is the fixed wait before retrying after an unresolved
	// identity or an unexpected disconnect.
	RetryDelay time.Duration

	// BackoffBase is the first delay after a connect error; it doubles on
	// each consecutive failure up to BackoffCeiling.
	BackoffBase    time.Duration
	BackoffCeiling time.Duration

	// MaxAttempts bounds consecutive failed connect attempts before the
	// manager gives up and waits for Wake.
	MaxAttempts int

	// Keepalive settings for the ping/pong cycle.
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

// Normalized fills unset fields with the documented defaults.
func (c Config) Normalized() Config {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 3 * time.Second
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffCeiling <= 0 {
		c.BackoffCeiling = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	return c
}

// Stats is a snapshot of the manager for the status endpoint.
type Stats struct {
	State             string    `json:"state"`
	ReconnectAttempts int       `json:"reconnect_attempts"`
	ConnectedAt       time.Time `json:"connected_at,omitempty"`
	LastError         string    `json:"last_error,omitempty"`
	MessagesReceived  int64     `json:"messages_received"`
}

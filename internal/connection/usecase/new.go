package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"campus-notify/internal/connection"
	"campus-notify/internal/router"
	"campus-notify/internal/session"
	"campus-notify/pkg/log"
)

// Reconciler is the badge catch-up hook fired after authentication so counts
// missed during a reconnect gap are polled back in.
type Reconciler interface {
	Refresh(ctx context.Context) error
}

// implManager implements connection.Manager.
type implManager struct {
	cfg     connection.Config
	session session.Manager
	creds   session.CredentialStore
	router  router.Router
	badge   Reconciler
	logger  log.Logger

	mu    sync.Mutex
	state connection.State
	sock  *socket
	// initializing is the single-flight guard for Initialize. It is
	// checked and set synchronously and cleared on every exit path.
	initializing bool
	attempts     int
	connectedAt  time.Time
	lastErr      error
	retryTimer   *time.Timer
	shutdown     bool

	messagesReceived atomic.Int64
}

// New creates a connection Manager.
func New(cfg connection.Config, sessionMgr session.Manager, creds session.CredentialStore, rt router.Router, badge Reconciler, logger log.Logger) connection.Manager {
	return &implManager{
		cfg:     cfg.Normalized(),
		session: sessionMgr,
		creds:   creds,
		router:  rt,
		badge:   badge,
		logger:  logger,
		state:   connection.StateDisconnected,
	}
}

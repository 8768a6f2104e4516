package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"campus-notify/internal/api"
	"campus-notify/internal/session"
	"campus-notify/pkg/log"
)

// implClient implements api.Client.
type implClient struct {
	baseURL        string
	httpClient     *http.Client
	creds          session.CredentialStore
	logger         log.Logger
	onUnauthorized func(ctx context.Context)
}

// Option configures the client.
type Option func(*implClient)

// WithUnauthorizedHook registers a callback fired after any request comes
// back 401/403, once the credential chain has been cleared. The session
// manager hangs its invalidation here so a rejected token on one endpoint
// drops the cached identity everywhere.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *implClient) {
		c.onUnauthorized = fn
	}
}

// New creates a new API client.
func New(cfg api.Config, creds session.CredentialStore, logger log.Logger, opts ...Option) api.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &implClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

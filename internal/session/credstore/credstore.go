// Package credstore reads the portal session token from a fixed-priority
// chain of storage slots: OS keyring, then the session token file, then the
// cookie file. The first non-empty, non-expired match wins. Invalidation
// clears every slot together; a partially-cleared chain would keep feeding a
// rejected token back into authenticated calls.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"

	"campus-notify/internal/session"
	"campus-notify/pkg/log"
)

const keyringTokenKey = "session-token"

// Slot is a single credential storage location.
type Slot interface {
	Name() string
	Read() (string, error)
	Clear() error
}

// Chain implements session.CredentialStore over an ordered list of slots.
type Chain struct {
	slots  []Slot
	logger log.Logger
	now    func() time.Time
}

// Config holds credential chain configuration.
type Config struct {
	ServiceName string // keyring service name
	TokenFile   string // session-scoped token file path
	CookieFile  string // cookie file path
	CookieName  string // cookie carrying the token
}

// New builds the default three-slot chain. Keyring availability is probed at
// construction; on headless hosts without a keyring the slot degrades to a
// miss rather than failing the chain.
func New(cfg Config, logger log.Logger) *Chain {
	slots := []Slot{
		newKeyringSlot(cfg.ServiceName, logger),
		&fileSlot{path: cfg.TokenFile},
		&cookieSlot{path: cfg.CookieFile, name: cfg.CookieName},
	}
	return &Chain{slots: slots, logger: logger, now: time.Now}
}

// NewChain builds a chain from explicit slots, highest priority first.
func NewChain(logger log.Logger, slots ...Slot) *Chain {
	return &Chain{slots: slots, logger: logger, now: time.Now}
}

// Token returns the first usable token in priority order.
func (c *Chain) Token() (string, error) {
	ctx := context.Background()
	for _, slot := range c.slots {
		token, err := slot.Read()
		if err != nil {
			c.logger.Debugf(ctx, "credential slot %s read failed: %v", slot.Name(), err)
			continue
		}
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if c.expired(token) {
			c.logger.Debugf(ctx, "credential slot %s holds an expired token, skipping", slot.Name())
			continue
		}
		return token, nil
	}
	return "", session.ErrNoCredentials
}

// Clear wipes all slots. Every slot is attempted even when an earlier one
// fails; the first error is reported.
func (c *Chain) Clear() error {
	var firstErr error
	for _, slot := range c.slots {
		if err := slot.Clear(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("clear %s: %w", slot.Name(), err)
		}
	}
	return firstErr
}

// expired reports whether a stored JWT carries a readable, already-passed exp
// claim. Opaque tokens (not parseable as JWT) are passed through unchanged;
// the server remains the authority on their validity.
func (c *Chain) expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(c.now())
}

// --- keyring slot ---

type keyringSlot struct {
	ring   keyring.Keyring
	logger log.Logger
}

func newKeyringSlot(serviceName string, logger log.Logger) *keyringSlot {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		logger.Warnf(context.Background(), "keyring unavailable: %v", err)
		return &keyringSlot{logger: logger}
	}
	return &keyringSlot{ring: ring, logger: logger}
}

func (s *keyringSlot) Name() string { return "keyring" }

func (s *keyringSlot) Read() (string, error) {
	if s.ring == nil {
		return "", nil
	}
	item, err := s.ring.Get(keyringTokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(item.Data), nil
}

func (s *keyringSlot) Clear() error {
	if s.ring == nil {
		return nil
	}
	if err := s.ring.Remove(keyringTokenKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// --- token file slot ---

type fileSlot struct {
	path string
}

func (s *fileSlot) Name() string { return "token-file" }

func (s *fileSlot) Read() (string, error) {
	if s.path == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *fileSlot) Clear() error {
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// --- cookie file slot ---

// cookieSlot reads a "name=value; name=value" cookie line, the same shape the
// portal writes for its auth cookie.
type cookieSlot struct {
	path string
	name string
}

func (s *cookieSlot) Name() string { return "cookie-file" }

func (s *cookieSlot) Read() (string, error) {
	if s.path == "" || s.name == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	for _, pair := range strings.Split(string(data), ";") {
		pair = strings.TrimSpace(pair)
		name, value, found := strings.Cut(pair, "=")
		if found && name == s.name {
			return value, nil
		}
	}
	return "", nil
}

func (s *cookieSlot) Clear() error {
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Package view provides the typed binding between logical navigation names
// and the surrounding application's activation handlers. Bindings are
// validated once at construction so a missing handler is a single detectable
// error instead of a scattering of silent nil checks at click time.
package view

import (
	"context"
	"fmt"

	"campus-notify/internal/event"
	"campus-notify/pkg/log"
)

// Target is a resolved navigation destination.
type Target struct {
	Section event.Section
	// PartnerID preselects a conversation thread when navigating to the
	// messages section.
	PartnerID string
}

// Handler activates one section in the surrounding application.
type Handler func(ctx context.Context, target Target) error

// Opener is the fallback used when no handler is bound for a section,
// typically opening the portal URL in a browser. A click must never be a
// dead end.
type Opener func(ctx context.Context, url string) error

// Binding maps sections to handlers, validated at construction.
type Binding struct {
	handlers map[event.Section]Handler
	urls     map[event.Section]string
	opener   Opener
	logger   log.Logger
}

// Config holds the handler set and fallback URLs per section.
type Config struct {
	Handlers map[event.Section]Handler
	URLs     map[event.Section]string
	Opener   Opener
}

// NewBinding validates and builds a Binding. Every section must be reachable:
// each needs a handler, or a URL plus an opener to fall back to.
func NewBinding(cfg Config, logger log.Logger) (*Binding, error) {
	b := &Binding{
		handlers: make(map[event.Section]Handler),
		urls:     make(map[event.Section]string),
		opener:   cfg.Opener,
		logger:   logger,
	}
	for section, h := range cfg.Handlers {
		if h != nil {
			b.handlers[section] = h
		}
	}
	for section, u := range cfg.URLs {
		b.urls[section] = u
	}

	sections := []event.Section{
		event.SectionMessages,
		event.SectionAnnouncements,
		event.SectionEnrollment,
		event.SectionGrades,
		event.SectionDashboard,
	}
	for _, section := range sections {
		if _, ok := b.handlers[section]; ok {
			continue
		}
		if b.urls[section] != "" && b.opener != nil {
			continue
		}
		return nil, fmt.Errorf("%w: %s", ErrUnboundSection, section)
	}
	return b, nil
}

// Activate navigates to the target: bound handler first, URL fallback second.
func (b *Binding) Activate(ctx context.Context, target Target) error {
	if h, ok := b.handlers[target.Section]; ok {
		if err := h(ctx, target); err == nil {
			return nil
		} else {
			b.logger.Warnf(ctx, "handler for section %s failed: %v", target.Section, err)
		}
	}

	if u := b.urls[target.Section]; u != "" && b.opener != nil {
		return b.opener(ctx, u)
	}
	return fmt.Errorf("%w: %s", ErrUnboundSection, target.Section)
}

package view

import (
	"context"
	"sync"
)

// Gate is a one-shot readiness signal. One observer resolves it exactly once;
// any number of components await the same gate instead of running their own
// polling loops against the same condition.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate creates an unresolved Gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Resolve marks the gate ready. Subsequent calls are no-ops.
func (g *Gate) Resolve() {
	g.once.Do(func() { close(g.ch) })
}

// Done returns a channel closed when the gate is ready.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// Wait blocks until the gate resolves or the context is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package seed

import (
	"context"
	"sync"
	"sync/atomic"
)

// Gate is closed until seeding has finished, whatever its outcome.
type Gate struct {
	ready atomic.Bool
	done  chan struct{}
	once  sync.Once
}

// NewGate creates a closed gate.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Open marks seeding as finished. Subsequent calls are no-ops.
func (g *Gate) Open() {
	g.once.Do(func() {
		g.ready.Store(true)
		close(g.done)
	})
}

// Ready reports whether the gate is open.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

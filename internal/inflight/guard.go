// Package inflight rejects re-entry into an action whose previous submission
// has not resolved yet.
package inflight

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrBusy = errors.New("action already in progress")

type Guard struct {
	sem  *semaphore.Weighted
	busy atomic.Bool
}

func New() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// Do runs fn unless another call through g is still running, in which case it
// returns ErrBusy without calling fn.
func (g *Guard) Do(fn func() error) error {
	if !g.sem.TryAcquire(1) {
		return ErrBusy
	}
	g.busy.Store(true)
	defer func() {
		g.busy.Store(false)
		g.sem.Release(1)
	}()
	return fn()
}

// Busy reports whether a call is in flight.
func (g *Guard) Busy() bool { return g.busy.Load() }

// Wait blocks until no call is in flight or ctx is done.
func (g *Guard) Wait(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.sem.Release(1)
	return nil
}

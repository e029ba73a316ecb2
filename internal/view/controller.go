// Package view owns the lifecycle of one fetched record list: the
// loading/error/ready phases, the manual retry path, and the selected-record
// detail sub-state. It is presentation-agnostic so the transitions can be
// tested without any rendering.
package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Phase is the top-level lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// Snapshot is a point-in-time copy of the controller state, safe to hand to
// templates and JSON encoders.
type Snapshot[R any] struct {
	Phase     Phase
	Records   []R
	ErrMsg    string
	FetchedAt time.Time
}

// Controller drives one record list through Loading → Ready | Error. The
// controller exclusively owns the list; callers only ever see copies.
type Controller[R any] struct {
	name  string
	fetch func(context.Context) ([]R, error)

	// Overlapping refreshes are ignore-while-in-flight: concurrent
	// callers join the fetch already running for this controller's key.
	group singleflight.Group

	mu        sync.Mutex
	phase     Phase
	records   []R
	errMsg    string
	fetchedAt time.Time
	fetched   bool // at least one fetch attempt completed
	selected  *R
}

// New returns a controller in the Loading phase. name keys the single-flight
// group and log lines; fetch is invoked once per activation or retry.
func New[R any](name string, fetch func(context.Context) ([]R, error)) *Controller[R] {
	return &Controller[R]{
		name:  name,
		fetch: fetch,
		phase: PhaseLoading,
	}
}

// Load returns the current snapshot, fetching first if no fetch has completed
// yet. After a failed fetch the Error snapshot is returned as-is; only Retry
// re-invokes the source.
func (c *Controller[R]) Load(ctx context.Context) Snapshot[R] {
	c.mu.Lock()
	if c.fetched {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()
	return c.refresh(ctx)
}

// Retry re-enters Loading and re-invokes the fetch. Safe to call from any
// phase; a retry racing an in-flight fetch shares that fetch's result instead
// of issuing a second request.
func (c *Controller[R]) Retry(ctx context.Context) Snapshot[R] {
	return c.refresh(ctx)
}

func (c *Controller[R]) refresh(ctx context.Context) Snapshot[R] {
	_, err, shared := c.group.Do(c.name, func() (any, error) {
		c.mu.Lock()
		c.phase = PhaseLoading
		c.errMsg = ""
		c.mu.Unlock()

		records, err := c.fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.fetched = true
		c.selected = nil
		if err != nil {
			c.phase = PhaseError
			c.records = nil
			c.errMsg = err.Error()
			return nil, err
		}
		c.phase = PhaseReady
		c.records = records
		c.errMsg = ""
		c.fetchedAt = time.Now()
		return nil, nil
	})
	if err != nil {
		slog.WarnContext(ctx, "Record fetch failed",
			"source", c.name, "shared", shared, "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Snapshot returns the current state without triggering a fetch.
func (c *Controller[R]) Snapshot() Snapshot[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[R]) snapshotLocked() Snapshot[R] {
	records := make([]R, len(c.records))
	copy(records, c.records)
	return Snapshot[R]{
		Phase:     c.phase,
		Records:   records,
		ErrMsg:    c.errMsg,
		FetchedAt: c.fetchedAt,
	}
}

// Select moves Ready/DetailClosed to Ready/DetailOpen for the first record
// matching pred. It reports false outside Ready or when nothing matches.
func (c *Controller[R]) Select(pred func(R) bool) (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero R
	if c.phase != PhaseReady {
		return zero, false
	}
	for i := range c.records {
		if pred(c.records[i]) {
			r := c.records[i]
			c.selected = &r
			return r, true
		}
	}
	return zero, false
}

// CloseDetail returns to Ready/DetailClosed. A no-op when nothing is open.
func (c *Controller[R]) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Selected returns the currently open detail record, if any.
func (c *Controller[R]) Selected() (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero R
		return zero, false
	}
	return *c.selected, true
}

// Package limiter provides a cooperative admission-control gate that bounds
// how many expensive computations are in flight at once. Excess callers are
// rejected immediately with ErrBusy, never queued.
package limiter

import (
	"errors"
	"sync"
)

// ErrBusy is returned when the gate is at its ceiling.
var ErrBusy = errors.New("too many concurrent requests")

// DefaultLimit is the admission ceiling used when none is configured.
const DefaultLimit = 10

// Gate tracks the set of active keys. Membership, not a counter, is the
// gate: a second concurrent call with an already-active key is admitted
// without raising the in-flight count. Completion of any call for a key
// removes it from the set.
type Gate struct {
	mu     sync.Mutex
	active map[string]struct{}
	limit  int
}

// New creates a gate with the given ceiling; non-positive values fall back
// to DefaultLimit.
func New(limit int) *Gate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Gate{
		active: make(map[string]struct{}),
		limit:  limit,
	}
}

// InFlight returns the number of currently active keys.
func (g *Gate) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}

func (g *Gate) acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.active[key]; ok {
		return nil
	}
	if len(g.active) >= g.limit {
		return ErrBusy
	}
	g.active[key] = struct{}{}
	return nil
}

func (g *Gate) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

// Do runs fn under the gate. If the ceiling is reached it fails immediately
// with ErrBusy and fn is never invoked; otherwise key is active for the
// duration of fn and removed afterwards regardless of fn's outcome.
func Do[T any](g *Gate, key string, fn func() (T, error)) (T, error) {
	if err := g.acquire(key); err != nil {
		var zero T
		return zero, err
	}
	defer g.release(key)

	return fn()
}

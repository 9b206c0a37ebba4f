// Package state owns the single live AppState and serializes access to it.
package state

import (
	"sync"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
)

// Container wraps the one shared AppState behind a mutex. Every component
// reads through it; mutations go through Update (which records the
// local-change timestamp the sync cooldown is built on) or Silent (which
// does not, for presentation-only tweaks like z-order focus).
//
// Callers must not perform network calls inside the passed functions; the
// lock is meant to cover only the read-compute-write sequence.
type Container struct {
	mu         sync.Mutex
	st         model.AppState
	rev        uint64
	lastChange time.Time
}

// New creates a container around an already sanitized state.
func New(st model.AppState) *Container {
	return &Container{st: st}
}

// Update applies a mutation and marks a local change.
func (c *Container) Update(fn func(*model.AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st)
	c.rev++
	c.lastChange = time.Now()
}

// UpdateAt is Update with an explicit clock, for tests and for callers that
// already hold a "now".
func (c *Container) UpdateAt(now time.Time, fn func(*model.AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st)
	c.rev++
	c.lastChange = now
}

// UpdateIf applies fn and marks a local change only when fn reports having
// mutated anything. Used by repair passes that often turn out to be no-ops.
func (c *Container) UpdateIf(fn func(*model.AppState) bool) (changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn(&c.st) {
		c.rev++
		c.lastChange = time.Now()
		return true
	}
	return false
}

// Silent applies a mutation without marking a local change. The change still
// bumps the revision so the next debounced push picks it up eventually.
func (c *Container) Silent(fn func(*model.AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st)
	c.rev++
}

// Replace installs a pulled remote snapshot. It deliberately does not mark a
// local change: applying remote data must not arm the pull cooldown.
func (c *Container) Replace(st model.AppState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st = st
	c.rev++
}

// View runs fn with read access to the live state. fn must not retain or
// mutate anything reachable from it.
func (c *Container) View(fn func(model.AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.st)
}

// Snapshot returns a deep copy safe to use outside the lock.
func (c *Container) Snapshot() model.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Clone()
}

// Encode serializes the live state in its canonical wire form.
func (c *Container) Encode() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Encode(c.st)
}

// Rev returns the mutation counter. The TUI's debounce tick captures it and
// pushes only if it is still current when the tick fires.
func (c *Container) Rev() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rev
}

// LastLocalChange returns when the most recent marked mutation happened.
// The zero time means no local edit has been made yet.
func (c *Container) LastLocalChange() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastChange
}

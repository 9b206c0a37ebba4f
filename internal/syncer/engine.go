// Package syncer keeps the local state convergent with the remote snapshot.
package syncer

import (
	"bytes"
	"sync"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/api"
	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/state"
	"github.com/sproutdesk/sproutdesk/internal/store"
)

// Status is the observable sync state.
type Status int

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusSynced
	StatusError
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSyncing:
		return "syncing"
	case StatusSynced:
		return "synced"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// DefaultCooldown is the trailing window after a local edit during which
// pulls are refused. It must stay longer than the push debounce so an
// edit's push lands before the next poll may pull.
const DefaultCooldown = 5 * time.Second

// Engine reconciles the container with the remote snapshot. Pushes are
// debounced by the caller and skipped when nothing changed since the last
// successful sync (byte-for-byte); pulls are refused inside the cooldown
// window after a local edit. At most one operation is in flight at a time.
type Engine struct {
	client    *api.Client
	container *state.Container
	local     *store.Store // optional; rewritten when a pull is applied
	cooldown  time.Duration
	now       func() time.Time

	mu           sync.Mutex // guards the fields below
	lastSynced   []byte
	inFlight     bool
	bootstrapped bool
	status       Status
}

// New creates an engine. local may be nil (no on-disk copy, used in tests).
func New(client *api.Client, container *state.Container, local *store.Store, cooldown time.Duration) *Engine {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Engine{
		client:    client,
		container: container,
		local:     local,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// SetNow overrides the clock (useful for testing).
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// Status returns the current observable sync status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Bootstrapped reports whether the first pull has completed (or confirmed
// the remote is empty). Pushes are refused before that, so a slow first
// pull can never be clobbered by stale local defaults.
func (e *Engine) Bootstrapped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bootstrapped
}

// Push sends the current state to the remote if it changed since the last
// successful sync. It is a no-op before bootstrap, while another operation
// is in flight, or when the serialized state is byte-identical to the last
// synced form. A failed push leaves the last-synced form untouched so the
// next debounce trigger retries.
func (e *Engine) Push() error {
	e.mu.Lock()
	if !e.bootstrapped || e.inFlight {
		e.mu.Unlock()
		return nil
	}
	data, err := e.container.Encode()
	if err != nil {
		e.status = StatusError
		e.mu.Unlock()
		return err
	}
	if bytes.Equal(data, e.lastSynced) {
		e.mu.Unlock()
		return nil
	}
	e.inFlight = true
	e.status = StatusSyncing
	e.mu.Unlock()

	pushErr := e.client.PutSnapshot(data)

	e.mu.Lock()
	e.inFlight = false
	if pushErr != nil {
		e.status = StatusError
		e.mu.Unlock()
		return pushErr
	}
	e.lastSynced = data
	e.status = StatusSynced
	e.mu.Unlock()

	if e.local != nil {
		if err := e.local.SaveBytes(data); err != nil {
			return err
		}
	}
	return nil
}

// Pull fetches the remote snapshot and applies it if it differs from the
// local state. It is a no-op while a sync is in flight or within the
// cooldown window after a local edit; a pull arriving while the user is
// actively editing must never overwrite in-flight local work. An absent
// remote snapshot (first run) bootstraps the profile with an initial push.
func (e *Engine) Pull() error {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return nil
	}
	if last := e.container.LastLocalChange(); !last.IsZero() && e.now().Sub(last) < e.cooldown {
		e.mu.Unlock()
		return nil
	}
	e.inFlight = true
	e.status = StatusSyncing
	e.mu.Unlock()

	raw, ok, pullErr := e.client.GetSnapshot()

	e.mu.Lock()
	e.inFlight = false
	if pullErr != nil {
		e.status = StatusError
		e.mu.Unlock()
		return pullErr
	}
	e.bootstrapped = true
	if !ok {
		// Nothing stored yet: seed the remote with the local state.
		e.status = StatusIdle
		e.mu.Unlock()
		return e.Push()
	}

	sanitized := model.Decode(raw, e.now())
	remote, err := model.Encode(sanitized)
	if err != nil {
		e.status = StatusError
		e.mu.Unlock()
		return err
	}
	local, err := e.container.Encode()
	if err != nil {
		e.status = StatusError
		e.mu.Unlock()
		return err
	}
	applied := false
	if !bytes.Equal(remote, local) {
		e.container.Replace(sanitized)
		applied = true
	}
	e.lastSynced = remote
	e.status = StatusSynced
	e.mu.Unlock()

	if applied && e.local != nil {
		if err := e.local.SaveBytes(remote); err != nil {
			return err
		}
	}
	return nil
}

// Package session owns one signed-in user's allocation state: load on
// sign-in, recompute deriveds on every edit, and persist through a
// debounced save.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mossfell/cashfall/internal/common"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/service"
	"github.com/mossfell/cashfall/internal/waterfall"
)

// DefaultSaveDelay is the quiet period after the last edit before the
// debounced save fires.
const DefaultSaveDelay = time.Second

// SystemClock is the real clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Manager is the single writer for one user's AllocationState. The
// in-memory state is the source of truth; save failures are surfaced as a
// status, never rolled back.
type Manager struct {
	store  service.DocumentStore
	clock  service.Clock
	userID string
	delay  time.Duration

	mu          sync.Mutex
	state       *model.AllocationState
	timer       *time.Timer
	closed      bool
	lastSaveErr error
}

// Option configures a Manager.
type Option func(*Manager)

// WithSaveDelay overrides the debounce quiet period.
func WithSaveDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// NewManager creates a manager for one user. Call Load before anything
// else.
func NewManager(store service.DocumentStore, clock service.Clock, userID string, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		clock:  clock,
		userID: userID,
		delay:  DefaultSaveDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the user's document and merges it over defaults. A missing
// document or a failed read is treated as a first-time user: defaults are
// provisioned and written through immediately.
func (m *Manager) Load(ctx context.Context) error {
	now := model.MonthOf(m.clock.Now())

	raw, err := m.store.Get(ctx, m.userID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			common.LogInfo("treating unreadable state as first-time user", common.Fields{"error": err.Error()})
		}
		m.state = model.DefaultState(now)
		m.recomputeLocked()
		m.saveLocked(ctx)
		return nil
	}

	m.state = model.LoadState(raw, now)
	m.recomputeLocked()
	return nil
}

// State returns the current state for rendering. The caller must not
// mutate it; edits go through Mutate.
func (m *Manager) State() *model.AllocationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mutate applies an edit, recomputes derived values, and schedules the
// debounced save. Edits arriving within the quiet period coalesce into one
// write.
func (m *Manager) Mutate(fn func(*model.AllocationState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.state == nil {
		return
	}

	fn(m.state)
	m.recomputeLocked()
	m.scheduleSaveLocked()
}

// Flush cancels any pending debounced save and writes immediately. The CLI
// calls this before exiting so a short-lived process never loses an edit.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.saveLocked(ctx)
	return m.lastSaveErr
}

// LastSaveErr reports the most recent save failure, or nil. In-memory
// state stays authoritative either way; the next edit re-attempts.
func (m *Manager) LastSaveErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSaveErr
}

// Close abandons any pending debounced write. Used on sign-out, where the
// next session starts from whatever was last persisted.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// recomputeLocked refreshes derived values after any edit. The waterfall
// hand-off is pull-based: the suggested business inflow is recomputed here,
// once, and the cash-flow engine reads it as a plain input.
func (m *Manager) recomputeLocked() {
	r := waterfall.Compute(m.state.WorkingCapital)
	m.state.SuggestedBusinessInflow = r.SuggestedInflow()
}

func (m *Manager) scheduleSaveLocked() {
	if m.timer != nil {
		m.timer.Reset(m.delay)
		return
	}
	m.timer = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.timer = nil
		if m.closed {
			return
		}
		m.saveLocked(context.Background())
	})
}

// saveLocked writes the current state. Failures are recorded, not fatal.
func (m *Manager) saveLocked(ctx context.Context) {
	doc, err := m.state.Encode()
	if err != nil {
		m.lastSaveErr = err
		return
	}
	m.lastSaveErr = m.store.Upsert(ctx, m.userID, doc, m.clock.Now())
	if m.lastSaveErr != nil {
		common.LogError(m.lastSaveErr, "save failed; will retry on next edit", common.Fields{"user": m.userID})
	}
}

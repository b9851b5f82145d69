package collection

import (
	"sync"
	"time"
)

// DefaultPendingTTL bounds how long an item may be flagged as "saving".
// If an operation never ends (hung request), the flag is dropped after the
// TTL so the UI cannot wedge. This is a safety valve, not cancellation:
// the request itself is left to its context.
const DefaultPendingTTL = 30 * time.Second

// Tracker is the pending-mutation set: at most one in-flight remote
// mutation per item identity. Begin is called before the network call
// starts and End in a defer, regardless of outcome.
type Tracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	timers map[string]*time.Timer
}

func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &Tracker{ttl: ttl, timers: make(map[string]*time.Timer)}
}

// Begin marks id as in flight. A second Begin for the same id before End
// fails with ErrMutationInFlight; concurrent edits to the same item are
// rejected, not queued.
func (t *Tracker) Begin(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.timers[id]; ok {
		return ErrMutationInFlight
	}
	t.timers[id] = time.AfterFunc(t.ttl, func() { t.drop(id) })
	return nil
}

// End releases id. Safe to call for an id that already expired.
func (t *Tracker) End(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
}

// Active reports whether id currently has an in-flight mutation.
func (t *Tracker) Active(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[id]
	return ok
}

func (t *Tracker) drop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.timers, id)
}

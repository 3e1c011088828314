package presence

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker records which users currently hold an open live connection.
// Slots expire after a TTL so a missed disconnect (abrupt network
// failure without a clean close) cannot leave a user online forever;
// heartbeats refresh the slot.
type Tracker struct {
	mu    sync.Mutex
	slots map[string]slot
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

type slot struct {
	connID   string
	lastSeen time.Time
}

// NewTracker builds a tracker whose slots expire after ttl. The caller
// owns the lifetime: Start launches the sweeper, Stop ends it.
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		slots: make(map[string]slot),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
}

// Start launches the background sweeper that expires stale slots.
func (t *Tracker) Start(sweepEvery time.Duration) {
	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.sweep(time.Now())
			case <-t.done:
				return
			}
		}
	}()
}

// Stop ends the sweeper. Safe to call more than once.
func (t *Tracker) Stop() {
	t.once.Do(func() { close(t.done) })
}

// Connect opens a presence slot for the user and returns the connection
// id. A second connection from the same user replaces the first slot.
func (t *Tracker) Connect(userID string) string {
	connID := uuid.New().String()
	t.mu.Lock()
	t.slots[userID] = slot{connID: connID, lastSeen: time.Now()}
	t.mu.Unlock()
	return connID
}

// Heartbeat refreshes the slot's last-seen time. Stale connection ids
// (already replaced by a newer connection) are ignored.
func (t *Tracker) Heartbeat(userID, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[userID]
	if !ok || s.connID != connID {
		return
	}
	s.lastSeen = time.Now()
	t.slots[userID] = s
}

// Disconnect removes the slot if it still belongs to connID.
func (t *Tracker) Disconnect(userID, connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.slots[userID]; ok && s.connID == connID {
		delete(t.slots, userID)
	}
}

// IsOnline reports whether the user holds a live, unexpired slot.
func (t *Tracker) IsOnline(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[userID]
	return ok && time.Since(s.lastSeen) <= t.ttl
}

// Online returns the ids of every user with a live slot.
func (t *Tracker) Online() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.slots))
	now := time.Now()
	for userID, s := range t.slots {
		if now.Sub(s.lastSeen) <= t.ttl {
			ids = append(ids, userID)
		}
	}
	return ids
}

// Count returns the number of live slots.
func (t *Tracker) Count() int {
	return len(t.Online())
}

func (t *Tracker) sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for userID, s := range t.slots {
		if now.Sub(s.lastSeen) > t.ttl {
			delete(t.slots, userID)
		}
	}
}

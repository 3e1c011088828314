package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDisconnect(t *testing.T) {
	tr := NewTracker(time.Minute)

	connID := tr.Connect("user-1")
	require.NotEmpty(t, connID)
	assert.True(t, tr.IsOnline("user-1"))
	assert.False(t, tr.IsOnline("user-2"))
	assert.Equal(t, []string{"user-1"}, tr.Online())

	tr.Disconnect("user-1", connID)
	assert.False(t, tr.IsOnline("user-1"))
	assert.Equal(t, 0, tr.Count())
}

func TestReconnectReplacesSlot(t *testing.T) {
	tr := NewTracker(time.Minute)

	first := tr.Connect("user-1")
	second := tr.Connect("user-1")
	require.NotEqual(t, first, second)
	assert.Equal(t, 1, tr.Count())

	// the old connection closing must not knock out the new one
	tr.Disconnect("user-1", first)
	assert.True(t, tr.IsOnline("user-1"))

	tr.Disconnect("user-1", second)
	assert.False(t, tr.IsOnline("user-1"))
}

func TestStaleHeartbeatIgnored(t *testing.T) {
	tr := NewTracker(30 * time.Millisecond)

	first := tr.Connect("user-1")
	second := tr.Connect("user-1")

	time.Sleep(40 * time.Millisecond)
	tr.Heartbeat("user-1", first) // replaced connection, must not refresh
	assert.False(t, tr.IsOnline("user-1"))

	tr.Heartbeat("user-2", second) // unknown user, no-op
	assert.False(t, tr.IsOnline("user-2"))
}

func TestHeartbeatKeepsSlotAlive(t *testing.T) {
	tr := NewTracker(50 * time.Millisecond)

	connID := tr.Connect("user-1")
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		tr.Heartbeat("user-1", connID)
	}
	assert.True(t, tr.IsOnline("user-1"))

	time.Sleep(70 * time.Millisecond)
	assert.False(t, tr.IsOnline("user-1"))
}

func TestSweepRemovesExpiredSlots(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)

	tr.Connect("stale")
	time.Sleep(20 * time.Millisecond)
	fresh := tr.Connect("fresh")

	tr.sweep(time.Now())

	tr.mu.Lock()
	_, staleKept := tr.slots["stale"]
	_, freshKept := tr.slots["fresh"]
	tr.mu.Unlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)

	tr.Disconnect("fresh", fresh)
}

func TestStartStop(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	tr.Start(5 * time.Millisecond)

	tr.Connect("user-1")
	time.Sleep(30 * time.Millisecond)

	// the sweeper, not just the read path, must have dropped the slot
	tr.mu.Lock()
	_, kept := tr.slots["user-1"]
	tr.mu.Unlock()
	assert.False(t, kept)

	tr.Stop()
	tr.Stop() // idempotent
}

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgpull-lighthouse/internal/clock"
	"wgpull-lighthouse/internal/domain"
)

func TestUpsertCreatesLeaseAndInitializesLastRotation(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(clock.FixedClock{At: now})

	lease := store.Upsert(&domain.NodePullRequest{
		Hostname:   "alpha",
		Endpoint:   "10.0.0.1",
		PublicKey:  "key",
		ListenPort: 51820,
	})

	assert.Equal(t, now, lease.LastSeen)
	assert.Equal(t, now, lease.LastRotation)

	got, ok := store.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", got.Endpoint)
}

func TestUpsertDoesNotResetLastRotationOnExistingLease(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &mutableClock{now: first}
	store := NewStore(c)

	store.Upsert(&domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "key"})

	c.now = first.Add(time.Hour)
	store.Upsert(&domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.2", PublicKey: "key"})

	got, _ := store.Get("alpha")
	assert.Equal(t, first, got.LastRotation)
	assert.Equal(t, first.Add(time.Hour), got.LastSeen)
}

func TestOthersExcludesSelf(t *testing.T) {
	store := NewStore(clock.NewSystemClock())
	store.Upsert(&domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1"})
	store.Upsert(&domain.NodePullRequest{Hostname: "bravo", Endpoint: "10.0.0.2"})

	others := store.Others("alpha")
	require.Len(t, others, 1)
	assert.Equal(t, "bravo", others[0].Hostname)
}

func TestRemoveExpired(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &mutableClock{now: start}
	store := NewStore(c)

	store.Upsert(&domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1"})
	c.now = start.Add(10 * time.Minute)
	store.Upsert(&domain.NodePullRequest{Hostname: "bravo", Endpoint: "10.0.0.2"})

	c.now = start.Add(20 * time.Minute)
	expired := store.RemoveExpired(15 * time.Minute)

	assert.Equal(t, []string{"alpha"}, expired)
	_, ok := store.Get("alpha")
	assert.False(t, ok)
	_, ok = store.Get("bravo")
	assert.True(t, ok)
}

// mutableClock lets a test advance "now" between calls, distinct from
// clock.FixedClock which never changes.
type mutableClock struct {
	now time.Time
}

func (c *mutableClock) Now() time.Time { return c.now }
func (c *mutableClock) LocalHour() int { return c.now.Hour() }

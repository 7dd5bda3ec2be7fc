package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wgpull-lighthouse/internal/clock"
	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/metrics"
	"wgpull-lighthouse/internal/psk"
	"wgpull-lighthouse/internal/state"
)

func newTestEngine(t *testing.T, c clock.Clock) *Engine {
	t.Helper()
	nodes := state.NewStore(c)
	keys := psk.NewStore(psk.NewRandomGenerator())
	cfg := Config{
		KeyRotationInterval: time.Hour,
		KeyRotationWindow:   state.RotationWindow{MinHour: 3, MaxHour: 5},
		NodeTimeout:         300 * time.Second,
		StateFilePath:       filepath.Join(t.TempDir(), "state.toml"),
	}
	return New(cfg, c, nodes, keys, metrics.NewCache(), zaptest.NewLogger(t))
}

// Scenario 1 — first pull seeds the cluster.
func TestFirstPullSeedsCluster(t *testing.T) {
	c := clock.FixedClock{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := newTestEngine(t, c)

	resp, err := e.Pull(context.Background(), &domain.NodePullRequest{
		Hostname:   "alpha",
		Endpoint:   "10.0.0.1",
		PublicKey:  "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
		ListenPort: 51820,
		AllowedIPs: []string{"10.1.0.0/24"},
	})
	require.NoError(t, err)
	assert.False(t, resp.RegenerateKeys)
	assert.Empty(t, resp.Peers)
}

// Scenario 2 — second node sees the first, and the PSK is symmetric.
func TestSecondNodeSeesFirstWithSymmetricPSK(t *testing.T) {
	c := clock.FixedClock{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := newTestEngine(t, c)
	ctx := context.Background()

	_, err := e.Pull(ctx, &domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", ListenPort: 51820})
	require.NoError(t, err)

	bravoResp, err := e.Pull(ctx, &domain.NodePullRequest{Hostname: "bravo", Endpoint: "10.0.0.2", PublicKey: "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE=", ListenPort: 51820})
	require.NoError(t, err)
	require.Len(t, bravoResp.Peers, 1)
	peerAlpha := bravoResp.Peers[0]
	assert.Equal(t, "alpha", peerAlpha.Hostname)
	assert.Equal(t, "10.0.0.1", peerAlpha.EndpointHost)
	assert.Equal(t, uint32(51820), peerAlpha.EndpointPort)

	alphaResp, err := e.Pull(ctx, &domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", ListenPort: 51820})
	require.NoError(t, err)
	require.Len(t, alphaResp.Peers, 1)
	peerBravo := alphaResp.Peers[0]
	assert.Equal(t, peerAlpha.PresharedKey, peerBravo.PresharedKey, "PSK must be identical on both sides")
}

// Scenario 4 — rotation window: at-most-one rotation per window, gated by
// time-of-day.
func TestRotationWindowGating(t *testing.T) {
	c := &mutableClock{now: time.Date(2026, 1, 1, 2, 30, 0, 0, time.UTC)}
	nodes := state.NewStore(c)
	keys := psk.NewStore(psk.NewRandomGenerator())
	cfg := Config{
		KeyRotationInterval: time.Hour,
		KeyRotationWindow:   state.RotationWindow{MinHour: 3, MaxHour: 5},
		NodeTimeout:         300 * time.Second,
		StateFilePath:       filepath.Join(t.TempDir(), "state.toml"),
	}
	e := New(cfg, c, nodes, keys, metrics.NewCache(), zaptest.NewLogger(t))
	ctx := context.Background()
	req := &domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", ListenPort: 51820}

	resp1, err := e.Pull(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp1.RegenerateKeys, "02:30 is outside the rotation window")

	c.now = c.now.Add(time.Hour) // 03:30, interval elapsed and inside window
	resp2, err := e.Pull(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp2.RegenerateKeys)

	c.now = c.now.Add(time.Minute) // one minute later: just rotated
	resp3, err := e.Pull(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp3.RegenerateKeys)
}

// Scenario 6 — snapshot round-trip: a fresh engine restored from the saved
// state file continues the sequence with no PSK regeneration.
func TestSnapshotRoundTripPreservesPSKs(t *testing.T) {
	c := clock.FixedClock{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	statePath := filepath.Join(t.TempDir(), "state.toml")
	nodes := state.NewStore(c)
	keys := psk.NewStore(psk.NewRandomGenerator())
	cfg := Config{
		KeyRotationInterval: time.Hour,
		KeyRotationWindow:   state.RotationWindow{MinHour: 3, MaxHour: 5},
		NodeTimeout:         300 * time.Second,
		StateFilePath:       statePath,
	}
	e := New(cfg, c, nodes, keys, metrics.NewCache(), zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := e.Pull(ctx, &domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", ListenPort: 51820})
	require.NoError(t, err)
	bravoResp, err := e.Pull(ctx, &domain.NodePullRequest{Hostname: "bravo", Endpoint: "10.0.0.2", PublicKey: "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE=", ListenPort: 51820})
	require.NoError(t, err)
	originalPSK := bravoResp.Peers[0].PresharedKey

	freshNodes := state.NewStore(c)
	freshKeys := psk.NewStore(psk.NewRandomGenerator())
	require.NoError(t, Restore(statePath, freshNodes, freshKeys))

	freshEngine := New(cfg, c, freshNodes, freshKeys, metrics.NewCache(), zaptest.NewLogger(t))
	alphaResp, err := freshEngine.Pull(ctx, &domain.NodePullRequest{Hostname: "alpha", Endpoint: "10.0.0.1", PublicKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", ListenPort: 51820})
	require.NoError(t, err)
	require.Len(t, alphaResp.Peers, 1)
	assert.Equal(t, originalPSK, alphaResp.Peers[0].PresharedKey)
}

type mutableClock struct {
	now time.Time
}

func (c *mutableClock) Now() time.Time { return c.now }
func (c *mutableClock) LocalHour() int { return c.now.Hour() }

// Package engine drives the pull transaction: the single sequence of steps
// that upserts a node's lease, decides key rotation, sweeps expired nodes,
// composes the caller's peer list, and snapshots the result to disk, all
// under one lock so a concurrent pull from another node never observes a
// half-applied transaction.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wgpull-lighthouse/internal/clock"
	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/metrics"
	"wgpull-lighthouse/internal/psk"
	"wgpull-lighthouse/internal/snapshot"
	"wgpull-lighthouse/internal/state"
	"wgpull-lighthouse/internal/validation"
)

// Config is the subset of lighthouse configuration the engine needs to
// drive rotation and expiry decisions and to locate the state file.
type Config struct {
	KeyRotationInterval time.Duration
	KeyRotationWindow   state.RotationWindow
	NodeTimeout         time.Duration
	StateFilePath       string
}

// Engine orchestrates one node-pull or metrics-push transaction at a time.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	clock   clock.Clock
	nodes   *state.Store
	keys    *psk.Store
	metrics *metrics.Cache
	log     *zap.Logger
}

// New builds an Engine. nodes and keys should already have been restored
// from a snapshot (or left empty for a fresh cluster) before the first
// pull arrives.
func New(cfg Config, c clock.Clock, nodes *state.Store, keys *psk.Store, metricsCache *metrics.Cache, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, clock: c, nodes: nodes, keys: keys, metrics: metricsCache, log: log}
}

// PushMetrics records a node's latest WireGuard runtime statistics. It does
// not take the pull transaction lock: the metrics cache has its own
// internal synchronization and is independent of node-lease state.
func (e *Engine) PushMetrics(req *domain.NodeMetricsPushRequest) {
	e.metrics.Upsert(req)
}

// Pull runs the full pull transaction for an authenticated, validated
// request. Every failure after validation is transaction-fatal. A composed
// response that fails its own validation is wrapped in
// domain.ErrBadResponseBody; every other failure is wrapped in
// domain.ErrInternalError. The in-memory state is left consistent for the
// next pull to heal, per the propagation policy.
func (e *Engine) Pull(ctx context.Context, req *domain.NodePullRequest) (*domain.NodePullResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	traceID := uuid.New().String()
	log := e.log.With(zap.String("trace_id", traceID), zap.String("hostname", req.Hostname))

	now := e.clock.Now()

	// 1. upsert the caller's own lease
	e.nodes.Upsert(req)
	log.Debug("upserted node lease")

	// 2. decide rotation; commit the decision immediately if true
	lease, _ := e.nodes.Get(req.Hostname)
	regenerate := state.ShouldRegenerateKeys(lease.LastRotation, now, e.cfg.KeyRotationInterval, e.cfg.KeyRotationWindow, e.clock.LocalHour())
	if regenerate {
		e.nodes.MarkRotated(req.Hostname, now)
		log.Info("rotation decision: regenerate_keys=true")
	}

	// 3. sweep expired nodes, cascading PSK deletion
	expired := e.nodes.RemoveExpired(e.cfg.NodeTimeout)
	for _, hostname := range expired {
		e.keys.Forget(hostname)
		log.Info("expired node lease", zap.String("expired_hostname", hostname))
	}

	// 4. compose the peer list for the caller
	peers, err := e.composePeers(ctx, req.Hostname)
	if err != nil {
		log.Error("failed to compose peer response", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrInternalError, err)
	}

	resp := &domain.NodePullResponse{RegenerateKeys: regenerate, Peers: peers}
	if err := validation.PullResponse(resp); err != nil {
		log.Error("composed response failed validation", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrBadResponseBody, err)
	}

	// 5. snapshot the resulting state to disk
	if err := e.snapshotLocked(now); err != nil {
		log.Error("failed to snapshot state", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrInternalError, err)
	}

	log.Info("pull transaction complete", zap.Int("peer_count", len(peers)))
	return resp, nil
}

func (e *Engine) composePeers(ctx context.Context, hostname string) ([]domain.NodePullResponsePeer, error) {
	others := e.nodes.Others(hostname)
	peers := make([]domain.NodePullResponsePeer, 0, len(others))
	for _, peer := range others {
		key, err := e.keys.Ensure(ctx, hostname, peer.Hostname)
		if err != nil {
			return nil, err
		}

		host, port, ok := state.SplitEndpoint(peer.Endpoint)
		if !ok {
			host, port = peer.Endpoint, peer.ListenPort
		}

		peers = append(peers, domain.NodePullResponsePeer{
			Hostname:            peer.Hostname,
			PublicKey:           peer.PublicKey,
			PresharedKey:        key,
			EndpointHost:        host,
			EndpointPort:        port,
			AllowedIPs:          peer.AllowedIPs,
			PersistentKeepalive: peer.PersistentKeepalive,
			RouteAllowedIPs:     peer.RouteAllowedIPs,
		})
	}
	return peers, nil
}

// snapshotLocked writes the current state to disk. Callers must already
// hold e.mu.
func (e *Engine) snapshotLocked(now time.Time) error {
	st := &snapshot.State{
		Nodes:         e.nodes.All(),
		PresharedKeys: e.keys.Snapshot(),
		LastModified:  now,
	}
	return snapshot.Save(e.cfg.StateFilePath, st)
}

// Restore loads persisted state at startup, populating nodes and keys. A
// missing file is not an error: the cluster starts empty.
func Restore(path string, nodes *state.Store, keys *psk.Store) error {
	st, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	nodes.Restore(st.Nodes)
	keys.Restore(st.PresharedKeys)
	return nil
}

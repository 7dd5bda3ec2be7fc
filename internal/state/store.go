// Package state holds the lighthouse's in-memory node-lease table and the
// rotation and expiry state machines that operate on it. All mutation goes
// through the single-writer Store, mirroring the single-writer lock the
// pull transaction holds end to end.
package state

import (
	"sync"
	"time"

	"wgpull-lighthouse/internal/clock"
	"wgpull-lighthouse/internal/domain"
)

// Store is the hostname-keyed table of NodeLease records. It is safe for
// concurrent use, though internal/engine additionally serializes whole pull
// transactions with its own lock so that upsert, rotation decision, expiry,
// and snapshot observe one consistent view.
type Store struct {
	mu    sync.Mutex
	clock clock.Clock
	nodes map[string]*domain.NodeLease
}

// NewStore builds an empty node table.
func NewStore(c clock.Clock) *Store {
	return &Store{clock: c, nodes: make(map[string]*domain.NodeLease)}
}

// Upsert applies a pull request to the node table: overwrites the caller's
// mutable fields and bumps last_seen, initializing last_rotation on first
// sight. Returns the stored lease.
func (s *Store) Upsert(req *domain.NodePullRequest) *domain.NodeLease {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	lease, exists := s.nodes[req.Hostname]
	if !exists {
		lease = &domain.NodeLease{Hostname: req.Hostname, LastRotation: now}
		s.nodes[req.Hostname] = lease
	}
	lease.Endpoint = req.Endpoint
	lease.PublicKey = req.PublicKey
	lease.ListenPort = req.ListenPort
	lease.PersistentKeepalive = req.PersistentKeepalive
	lease.AllowedIPs = req.AllowedIPs
	lease.RouteAllowedIPs = req.RouteAllowedIPs
	lease.LastSeen = now
	return lease
}

// Get returns a copy of the lease for hostname, or false if unknown.
func (s *Store) Get(hostname string) (domain.NodeLease, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.nodes[hostname]
	if !ok {
		return domain.NodeLease{}, false
	}
	return *lease, true
}

// Others returns a copy of every lease except the named hostname, the set
// of candidate peers for that node's pull response.
func (s *Store) Others(hostname string) []domain.NodeLease {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.NodeLease, 0, len(s.nodes))
	for h, lease := range s.nodes {
		if h == hostname {
			continue
		}
		out = append(out, *lease)
	}
	return out
}

// All returns a copy of every lease in the table, used for snapshotting.
func (s *Store) All() []domain.NodeLease {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.NodeLease, 0, len(s.nodes))
	for _, lease := range s.nodes {
		out = append(out, *lease)
	}
	return out
}

// Restore replaces the table wholesale from a snapshot load, used only at
// startup.
func (s *Store) Restore(leases []domain.NodeLease) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[string]*domain.NodeLease, len(leases))
	for i := range leases {
		lease := leases[i]
		s.nodes[lease.Hostname] = &lease
	}
}

// MarkRotated immediately commits last_rotation = now for hostname. Called
// the instant a rotation decision returns true, before the response is
// sent, so a flapping node is never asked twice in the same window.
func (s *Store) MarkRotated(hostname string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lease, ok := s.nodes[hostname]; ok {
		lease.LastRotation = now
	}
}

// RemoveExpired deletes every lease whose last_seen is older than timeout
// and returns the hostnames removed, for PSK cascade-delete.
func (s *Store) RemoveExpired(timeout time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var expired []string
	for h, lease := range s.nodes {
		if now.Sub(lease.LastSeen) > timeout {
			expired = append(expired, h)
			delete(s.nodes, h)
		}
	}
	return expired
}

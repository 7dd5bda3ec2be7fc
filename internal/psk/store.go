package psk

import (
	"context"
	"sync"
)

// Store is the map-backed pairwise PSK table. Ensure is the only way to
// read or create an entry; Forget removes every pair involving a hostname.
// Zero value is not usable; construct with NewStore.
type Store struct {
	mu   sync.Mutex
	gen  Generator
	keys map[PeerPair]string
}

// NewStore builds an empty Store backed by gen for first-encounter key
// generation.
func NewStore(gen Generator) *Store {
	return &Store{gen: gen, keys: make(map[PeerPair]string)}
}

// Ensure returns the existing PSK for {a,b}, generating and storing one on
// first encounter.
func (s *Store) Ensure(ctx context.Context, a, b string) (string, error) {
	pair := NewPeerPair(a, b)

	s.mu.Lock()
	if key, ok := s.keys[pair]; ok {
		s.mu.Unlock()
		return key, nil
	}
	s.mu.Unlock()

	key, err := s.gen.Generate(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.keys[pair]; ok {
		return existing, nil
	}
	s.keys[pair] = key
	return key, nil
}

// Forget removes every pair that involves hostname, called when a node's
// lease expires.
func (s *Store) Forget(hostname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pair := range s.keys {
		if pair.Involves(hostname) {
			delete(s.keys, pair)
		}
	}
}

// Snapshot returns a copy of every pair currently held, for TOML
// serialization by internal/snapshot.
func (s *Store) Snapshot() map[PeerPair]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[PeerPair]string, len(s.keys))
	for pair, key := range s.keys {
		out[pair] = key
	}
	return out
}

// Restore replaces the store's contents wholesale, used when loading a
// snapshot at startup. It does not invoke the generator.
func (s *Store) Restore(entries map[PeerPair]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[PeerPair]string, len(entries))
	for pair, key := range entries {
		s.keys[pair] = key
	}
}

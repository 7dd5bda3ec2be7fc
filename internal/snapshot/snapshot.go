// Package snapshot persists the lighthouse's in-memory state to and from a
// single TOML document, with a write-temp-file/fsync/rename discipline so a
// crash mid-write never leaves a truncated or half-written state file on
// disk — the original implementation wrote the file in place, which this
// corrects.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"wgpull-lighthouse/internal/domain"
	"wgpull-lighthouse/internal/psk"
)

// pskEntry is one row of the persisted preshared_keys list.
type pskEntry struct {
	Peers [2]string `toml:"peers"`
	Key   string    `toml:"key"`
}

// document is the exact on-disk shape of the state file.
type document struct {
	Nodes         map[string]domain.NodeLease `toml:"nodes"`
	PresharedKeys []pskEntry                  `toml:"preshared_keys"`
	LastModified  time.Time                   `toml:"last_modified"`
}

// State is the in-memory aggregate snapshot.go converts to and from TOML.
type State struct {
	Nodes         []domain.NodeLease
	PresharedKeys map[psk.PeerPair]string
	LastModified  time.Time
}

// Load reads and parses path. A missing file is not an error: it returns a
// nil *State so the caller starts from an empty cluster, matching a fresh
// lighthouse's first boot. A present-but-malformed file is
// ErrStateFileMalformed, which callers should treat as fatal at startup
// rather than silently discarding the cluster's membership.
func Load(path string) (*State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrStateFileUnreadable, err)
	}

	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStateFileMalformed, err)
	}

	nodes := make([]domain.NodeLease, 0, len(doc.Nodes))
	for hostname, lease := range doc.Nodes {
		lease.Hostname = hostname
		nodes = append(nodes, lease)
	}

	keys := make(map[psk.PeerPair]string, len(doc.PresharedKeys))
	for _, entry := range doc.PresharedKeys {
		keys[psk.NewPeerPair(entry.Peers[0], entry.Peers[1])] = entry.Key
	}

	return &State{Nodes: nodes, PresharedKeys: keys, LastModified: doc.LastModified}, nil
}

// Save serializes state to TOML and atomically replaces path: write to a
// temp file in the same directory, fsync it, then rename over the target.
// The rename is atomic on any POSIX filesystem, so readers (or a crashed
// process restarting) never observe a partially written file.
func Save(path string, state *State) error {
	doc := document{
		Nodes:        make(map[string]domain.NodeLease, len(state.Nodes)),
		LastModified: state.LastModified,
	}
	for _, lease := range state.Nodes {
		doc.Nodes[lease.Hostname] = lease
	}
	doc.PresharedKeys = make([]pskEntry, 0, len(state.PresharedKeys))
	for pair, key := range state.PresharedKeys {
		a, b := pair.Members()
		doc.PresharedKeys = append(doc.PresharedKeys, pskEntry{Peers: [2]string{a, b}, Key: key})
	}

	encoded, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSnapshotWriteFailed, err)
	}
	return nil
}

package domain

import "time"

// NodeLease is the server-side record of a single node, refreshed by every
// pull and expired by inactivity. It is the primary record of
// internal/state's node table, keyed by Hostname.
type NodeLease struct {
	// Hostname is the DNS-label-constrained primary key of the node.
	Hostname string `toml:"hostname"`

	// Endpoint is the hostname or IP (optionally host:port) that other
	// peers should dial to reach this node.
	Endpoint string `toml:"endpoint"`

	// PublicKey is the node's current WireGuard public key, 32 raw bytes
	// base64-encoded.
	PublicKey string `toml:"public_key"`

	// ListenPort is the node's own WireGuard listen port, used as the
	// peer-response port when Endpoint carries no port of its own.
	ListenPort uint32 `toml:"listen_port"`

	// PersistentKeepalive is the keepalive interval, in seconds, the node
	// asked its peers to use.
	PersistentKeepalive uint32 `toml:"persistent_keepalive"`

	// AllowedIPs is the set of CIDRs the node claims inside the overlay.
	AllowedIPs []string `toml:"allowed_ips"`

	// RouteAllowedIPs is a routing hint propagated verbatim to peers.
	RouteAllowedIPs bool `toml:"route_allowed_ips"`

	// LastSeen is the wall-clock time of the most recent successful pull.
	// Monotonic per node across a single server lifetime.
	LastSeen time.Time `toml:"last_seen"`

	// LastRotation is the wall-clock time of the most recent rotation
	// decision — not of an actual key change on the node's side.
	LastRotation time.Time `toml:"last_rotation"`
}

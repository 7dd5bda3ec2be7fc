package domain

// NodePullRequest is the body of POST /api/v1/pull: a node pushing its own
// current parameters and asking for its peer list back.
type NodePullRequest struct {
	Hostname            string   `json:"hostname" binding:"required"`
	Endpoint            string   `json:"endpoint" binding:"required"`
	PublicKey           string   `json:"public_key" binding:"required"`
	ListenPort          uint32   `json:"listen_port"`
	PersistentKeepalive uint32   `json:"persistent_keepalive"`
	AllowedIPs          []string `json:"allowed_ips"`
	RouteAllowedIPs     bool     `json:"route_allowed_ips"`
}

// NodePullResponsePeer describes one peer the caller should configure,
// including a pair-specific pre-shared key.
type NodePullResponsePeer struct {
	Hostname            string   `json:"hostname"`
	PublicKey           string   `json:"public_key"`
	PresharedKey        string   `json:"preshared_key"`
	EndpointHost        string   `json:"endpoint_host"`
	EndpointPort        uint32   `json:"endpoint_port"`
	AllowedIPs          []string `json:"allowed_ips"`
	PersistentKeepalive uint32   `json:"persistent_keepalive"`
	RouteAllowedIPs     bool     `json:"route_allowed_ips"`
}

// NodePullResponse is the body returned for a successful pull.
type NodePullResponse struct {
	RegenerateKeys bool                   `json:"regenerate_keys"`
	Peers          []NodePullResponsePeer `json:"peers"`
}

// NodeMetricsPushRequestPeer is one peer's WireGuard runtime statistics, as
// reported by the pushing node (typically parsed from `wg show dump`).
type NodeMetricsPushRequestPeer struct {
	Hostname            string `json:"hostname" binding:"required"`
	Endpoint            string `json:"endpoint"`
	LatestHandshake     uint64 `json:"latest_handshake"`
	TransferRx          int64  `json:"transfer_rx"`
	TransferTx          int64  `json:"transfer_tx"`
	PersistentKeepalive int64  `json:"persistent_keepalive"`
}

// NodeMetricsPushRequest is the body of POST /api/v1/metrics.
type NodeMetricsPushRequest struct {
	Hostname      string                       `json:"hostname" binding:"required"`
	Interface     string                       `json:"interface" binding:"required"`
	ListeningPort uint16                       `json:"listening_port"`
	Peers         []NodeMetricsPushRequestPeer `json:"peers"`
}

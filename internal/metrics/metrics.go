// Package metrics aggregates the latest WireGuard runtime statistics each
// node pushes and exposes them for Prometheus scraping.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wgpull-lighthouse/internal/domain"
)

// Cache is a write-through store of the most recent metrics push from each
// node, backed by a set of Prometheus gauges registered on a private
// registry so the exposition only ever contains lighthouse_* series, never
// the Go runtime's own go_*/process_* defaults.
type Cache struct {
	mu       sync.Mutex
	registry *prometheus.Registry

	nodeUp          *prometheus.GaugeVec
	latestHandshake *prometheus.GaugeVec
	transferRx      *prometheus.GaugeVec
	transferTx      *prometheus.GaugeVec
}

// NewCache builds an empty metrics cache with its own registry.
func NewCache() *Cache {
	c := &Cache{
		registry: prometheus.NewRegistry(),
		nodeUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lighthouse_node_up",
			Help: "1 for every node with a current metrics push on record.",
		}, []string{"hostname"}),
		latestHandshake: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lighthouse_peer_latest_handshake",
			Help: "Unix timestamp of the most recent WireGuard handshake with a peer.",
		}, []string{"hostname", "peer_hostname"}),
		transferRx: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lighthouse_peer_transfer_rx",
			Help: "Bytes received from a peer since interface creation.",
		}, []string{"hostname", "peer_hostname"}),
		transferTx: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lighthouse_peer_transfer_tx",
			Help: "Bytes sent to a peer since interface creation.",
		}, []string{"hostname", "peer_hostname"}),
	}
	c.registry.MustRegister(c.nodeUp, c.latestHandshake, c.transferRx, c.transferTx)
	return c
}

// Upsert records a node's latest metrics push, overwriting whatever was
// previously recorded for that hostname.
func (c *Cache) Upsert(req *domain.NodeMetricsPushRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nodeUp.WithLabelValues(req.Hostname).Set(1)
	for _, g := range []*prometheus.GaugeVec{c.latestHandshake, c.transferRx, c.transferTx} {
		g.DeletePartialMatch(prometheus.Labels{"hostname": req.Hostname})
	}
	for _, peer := range req.Peers {
		labels := prometheus.Labels{"hostname": req.Hostname, "peer_hostname": peer.Hostname}
		c.latestHandshake.With(labels).Set(float64(peer.LatestHandshake))
		c.transferRx.With(labels).Set(float64(peer.TransferRx))
		c.transferTx.With(labels).Set(float64(peer.TransferTx))
	}
}

// Handler returns the http.Handler that serves GET /metrics.
func (c *Cache) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

package validation

import (
	"fmt"

	"wgpull-lighthouse/internal/domain"
)

// PullRequest validates every field of a NodePullRequest before it is
// allowed to touch internal/state. Returns the first failure encountered.
func PullRequest(req *domain.NodePullRequest) error {
	if err := Hostname("hostname", req.Hostname); err != nil {
		return err
	}
	if err := HostnameOrIP("endpoint", req.Endpoint); err != nil {
		return err
	}
	if err := WireGuardKey("public_key", req.PublicKey); err != nil {
		return err
	}
	for i, cidr := range req.AllowedIPs {
		if err := CIDR(fmt.Sprintf("allowed_ips[%d]", i), cidr); err != nil {
			return err
		}
	}
	return nil
}

// PullResponse validates a composed NodePullResponse before it is written to
// the wire. A failure here means the engine built a response the server
// itself would reject as malformed — it is surfaced as ErrBadResponseBody,
// not ErrBadRequestBody.
func PullResponse(resp *domain.NodePullResponse) error {
	for _, peer := range resp.Peers {
		if err := Hostname("peer.hostname", peer.Hostname); err != nil {
			return err
		}
		if err := WireGuardKey("peer.public_key", peer.PublicKey); err != nil {
			return err
		}
		if err := WireGuardKey("peer.preshared_key", peer.PresharedKey); err != nil {
			return err
		}
		if err := HostnameOrIP("peer.endpoint_host", peer.EndpointHost); err != nil {
			return err
		}
		for i, cidr := range peer.AllowedIPs {
			if err := CIDR(fmt.Sprintf("peer.allowed_ips[%d]", i), cidr); err != nil {
				return err
			}
		}
	}
	return nil
}

// MetricsPushRequest validates a NodeMetricsPushRequest.
func MetricsPushRequest(req *domain.NodeMetricsPushRequest) error {
	if err := Hostname("hostname", req.Hostname); err != nil {
		return err
	}
	if err := InterfaceName("interface", req.Interface); err != nil {
		return err
	}
	for i, peer := range req.Peers {
		if err := Hostname(fmt.Sprintf("peers[%d].hostname", i), peer.Hostname); err != nil {
			return err
		}
	}
	return nil
}

package state

import (
	"strconv"
	"strings"
)

// SplitEndpoint splits a peer endpoint into host and port, handling
// bracketed IPv6 literals explicitly ("[::1]:51820") instead of the
// last-colon split that misparses them. For a bare IPv6 literal with no
// bracket and no port ("::1"), the whole value is returned as host. When
// no port is present, ok is false and the caller falls back to the peer's
// own listen_port.
func SplitEndpoint(endpoint string) (host string, port uint32, ok bool) {
	if strings.HasPrefix(endpoint, "[") {
		closeIdx := strings.Index(endpoint, "]")
		if closeIdx < 0 {
			return endpoint, 0, false
		}
		host = endpoint[1:closeIdx]
		rest := endpoint[closeIdx+1:]
		if strings.HasPrefix(rest, ":") {
			p, err := strconv.ParseUint(rest[1:], 10, 32)
			if err != nil {
				return host, 0, false
			}
			return host, uint32(p), true
		}
		return host, 0, false
	}

	// A bare (unbracketed) IPv6 literal contains more than one colon; only
	// a single colon can separate host:port for IPv4/hostname endpoints.
	if strings.Count(endpoint, ":") != 1 {
		return endpoint, 0, false
	}

	idx := strings.LastIndex(endpoint, ":")
	p, err := strconv.ParseUint(endpoint[idx+1:], 10, 32)
	if err != nil {
		return endpoint, 0, false
	}
	return endpoint[:idx], uint32(p), true
}

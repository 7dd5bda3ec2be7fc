// Package psk maintains the symmetric mapping from unordered node-hostname
// pairs to their pre-shared key, generating fresh key material the first
// time a pair becomes live.
package psk

// PeerPair is an unordered pair of hostnames, canonicalized so that
// {a,b} == {b,a}: equal, comparable, and usable as a map key.
type PeerPair struct {
	a, b string
}

// NewPeerPair canonicalizes two hostnames into a PeerPair, sorting them
// lexicographically so construction order never affects identity.
func NewPeerPair(a, b string) PeerPair {
	if a < b {
		return PeerPair{a: a, b: b}
	}
	return PeerPair{a: b, b: a}
}

// Involves reports whether hostname is one of the pair's two members.
func (p PeerPair) Involves(hostname string) bool {
	return p.a == hostname || p.b == hostname
}

// Members returns the pair's two hostnames in canonical (sorted) order.
func (p PeerPair) Members() (string, string) {
	return p.a, p.b
}

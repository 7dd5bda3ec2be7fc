// Package challenge implements the node/lighthouse mutual-authentication
// handshake: a SHA-256 keyed hash over a caller-chosen nonce, proving
// possession of a shared secret without ever sending it on the wire.
//
// No record is kept of nonces already answered: there is no freshness check
// and no replay protection, and the same nonce gets the same response every
// time it is presented.
package challenge

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const (
	challengeLength = 64
	alphanumeric    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Response computes hex(SHA-256(secret || challenge)), the value both sides
// independently derive to authenticate each other.
func Response(secret, challengeNonce string) string {
	h := sha256.New()
	h.Write([]byte(secret))
	h.Write([]byte(challengeNonce))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether response is the correct answer to challengeNonce
// under secret.
func Verify(secret, challengeNonce, response string) bool {
	return Response(secret, challengeNonce) == response
}

// NewNonce generates a fresh 64-character alphanumeric challenge string,
// drawn from a CSPRNG so it cannot be predicted by an eavesdropper.
func NewNonce() (string, error) {
	buf := make([]byte, challengeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		if err != nil {
			return "", err
		}
		buf[i] = alphanumeric[n.Int64()]
	}
	return string(buf), nil
}

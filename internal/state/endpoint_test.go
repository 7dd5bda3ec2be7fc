package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEndpointIPv4HostPort(t *testing.T) {
	host, port, ok := SplitEndpoint("10.0.0.1:51820")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", host)
	assert.Equal(t, uint32(51820), port)
}

func TestSplitEndpointHostnameNoPort(t *testing.T) {
	host, _, ok := SplitEndpoint("alpha.example.com")
	assert.False(t, ok)
	assert.Equal(t, "alpha.example.com", host)
}

func TestSplitEndpointBracketedIPv6(t *testing.T) {
	host, port, ok := SplitEndpoint("[::1]:51820")
	assert.True(t, ok)
	assert.Equal(t, "::1", host)
	assert.Equal(t, uint32(51820), port)
}

func TestSplitEndpointBareIPv6NoPort(t *testing.T) {
	host, _, ok := SplitEndpoint("::1")
	assert.False(t, ok)
	assert.Equal(t, "::1", host)
}

package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectDockerHost_Windows verifies that the named pipe endpoint is
// returned without any filesystem or dial check.
func TestDetectDockerHost_Windows(t *testing.T) {
	host, err := detectDockerHost("windows")
	require.NoError(t, err)
	assert.Equal(t, "npipe:////./pipe/docker_engine", host)
}

// TestDetectDockerHost_Unsupported verifies the unknown-platform branch.
func TestDetectDockerHost_Unsupported(t *testing.T) {
	_, err := detectDockerHost("plan9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}

// TestFirstUnixSocket verifies path probing order and the not-found error.
func TestFirstUnixSocket(t *testing.T) {
	dir := t.TempDir()

	_, err := firstUnixSocket([]string{dir + "/missing.sock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Any existing filesystem entry satisfies the existence check.
	host, err := firstUnixSocket([]string{dir + "/missing.sock", dir})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+dir, host)
}

// TestNewClientWithHost verifies client construction does not contact the
// daemon, so an unreachable endpoint only fails at Ping.
func TestNewClientWithHost(t *testing.T) {
	c, err := newClientWithHost("tcp://127.0.0.1:1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}

package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/shinji-kodama/devport/internal/model"
)

// defaultTimeout bounds each call devport makes to the daemon. The used-port
// snapshot must not hang a scan because Docker Desktop is paused.
const defaultTimeout = 3 * time.Second

// windowsPipeHost is Docker Desktop's default engine endpoint on Windows.
const windowsPipeHost = "npipe:////./pipe/docker_engine"

// Client wraps the Docker Engine SDK client.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST wins when set; otherwise
// the platform's default socket is located:
//   - Linux: /var/run/docker.sock
//   - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//   - Windows: npipe:////./pipe/docker_engine
//
// Errors are *model.CLIError with ExitDockerNotRunning.
func NewClient() (*Client, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	host, err := detectDockerHost(runtime.GOOS)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "Docker socket not found", err)
	}
	return newClientWithHost(host)
}

func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost returns the Docker host URI for goos. Unix socket
// existence is checked with os.Stat; reachability is left to Ping.
func detectDockerHost(goos string) (string, error) {
	switch goos {
	case "linux":
		return firstUnixSocket([]string{"/var/run/docker.sock"})

	case "darwin":
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".docker", "run", "docker.sock"))
		}
		return firstUnixSocket(paths)

	case "windows":
		// Named pipes cannot be stat'ed; Ping reports whether the daemon
		// is actually listening on it.
		return windowsPipeHost, nil

	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// firstUnixSocket returns "unix://<path>" for the first existing path.
func firstUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v (is Docker running?)", paths)
}

// Ping verifies that the daemon answers within defaultTimeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.inner.Ping(ctx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker daemon is not responding (is Docker running?)",
			err,
		)
	}
	return nil
}

// Close releases the client. Safe to call on a nil inner client.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

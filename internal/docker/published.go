package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/shinji-kodama/devport/internal/model"
)

// ListPublishedPorts returns every host port published by a running
// container. Unpublished (container-only) ports are skipped.
func ListPublishedPorts(ctx context.Context, cli *Client) ([]model.PublishedPort, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Stopped containers hold no host ports, so let the daemon filter.
	containers, err := cli.inner.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("status", "running")),
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "failed to list Docker containers", err)
	}

	var published []model.PublishedPort
	for _, c := range containers {
		published = append(published, summaryToPublished(c)...)
	}
	return published, nil
}

// summaryToPublished maps one container to its published host ports.
func summaryToPublished(c container.Summary) []model.PublishedPort {
	name := containerName(c.Names)

	var published []model.PublishedPort
	for _, p := range c.Ports {
		published = appendPublished(published, name, int(p.PublicPort), p.Type)
	}
	return published
}

// containerName returns the first name without the leading "/" the Docker
// API adds.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// appendPublished records a mapping if it is published on the host.
// hostPort is 0 for ports exposed only inside the container network.
func appendPublished(dst []model.PublishedPort, name string, hostPort int, proto string) []model.PublishedPort {
	if hostPort == 0 {
		return dst
	}
	if proto == "" {
		proto = "tcp"
	}
	return append(dst, model.PublishedPort{
		ContainerName: name,
		HostPort:      hostPort,
		Protocol:      proto,
	})
}

// ForProtocol keeps the mappings for proto ("tcp" or "udp"). An empty proto
// keeps everything.
func ForProtocol(published []model.PublishedPort, proto string) []model.PublishedPort {
	if proto == "" {
		return published
	}
	var kept []model.PublishedPort
	for _, p := range published {
		if strings.EqualFold(p.Protocol, proto) {
			kept = append(kept, p)
		}
	}
	return kept
}

// HostPorts collects the host side of each mapping into a set. A port
// published for both IPv4 and IPv6 appears once.
func HostPorts(published []model.PublishedPort) model.PortSet {
	used := make(model.PortSet, len(published))
	for _, p := range published {
		used.Add(p.HostPort)
	}
	return used
}

// PublishedPorts is a used-port snapshot source backed by the Docker daemon.
// Each call opens a fresh client so no connection outlives a scan.
type PublishedPorts struct {
	// Connect opens the client. Nil means NewClient.
	Connect func() (*Client, error)

	// Protocol limits the result to "tcp" or "udp" mappings. Empty means
	// both.
	Protocol string
}

// UsedPorts returns the host ports currently published by containers.
func (p PublishedPorts) UsedPorts(ctx context.Context) (model.PortSet, error) {
	connect := p.Connect
	if connect == nil {
		connect = NewClient
	}

	cli, err := connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = cli.Close() }()

	published, err := ListPublishedPorts(ctx, cli)
	if err != nil {
		return nil, err
	}
	return HostPorts(ForProtocol(published, p.Protocol)), nil
}

package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/shinji-kodama/devport/internal/model"
)

// Snapshotter reports the ports bound on the host at the time of the call.
// Results are never cached; every call reflects current host state.
type Snapshotter interface {
	UsedPorts(ctx context.Context) (model.PortSet, error)
}

// SnapshotFunc adapts a plain function to the Snapshotter interface.
type SnapshotFunc func(ctx context.Context) (model.PortSet, error)

// UsedPorts calls f(ctx).
func (f SnapshotFunc) UsedPorts(ctx context.Context) (model.PortSet, error) {
	return f(ctx)
}

// SystemSnapshot reads the host connection table: TCP listeners, the local
// endpoints of TCP connections, and UDP sockets, over IPv4 and IPv6.
//
// On Linux this parses /proc/net/*, on macOS it shells out to lsof, on
// Windows it calls GetExtendedTcpTable; gopsutil hides the difference.
type SystemSnapshot struct {
	// Network limits the snapshot to "tcp" or "udp" sockets. Empty means
	// both.
	Network string
}

// kind maps Network to a gopsutil connection kind.
func (s SystemSnapshot) kind() string {
	switch s.Network {
	case "tcp", "udp":
		return s.Network
	default:
		return "inet"
	}
}

// UsedPorts queries the connection table once.
func (s SystemSnapshot) UsedPorts(ctx context.Context) (model.PortSet, error) {
	conns, err := psnet.ConnectionsWithContext(ctx, s.kind())
	if err != nil {
		return nil, fmt.Errorf("failed to read connection table: %w", err)
	}
	return portsFromConnections(conns), nil
}

// portsFromConnections collects the local port of every socket. Sockets
// without a bound port (Laddr.Port == 0) are dropped by PortSet.Add.
func portsFromConnections(conns []psnet.ConnectionStat) model.PortSet {
	used := make(model.PortSet, len(conns))
	for _, c := range conns {
		used.Add(int(c.Laddr.Port))
	}
	return used
}

// MultiSnapshot merges the snapshots of several sources.
//
// A failing source is logged and skipped; the remaining sources still
// contribute. An error is returned only when every source failed.
type MultiSnapshot struct {
	Sources []Snapshotter
	Log     zerolog.Logger
}

// UsedPorts returns the union of all sources.
func (m MultiSnapshot) UsedPorts(ctx context.Context) (model.PortSet, error) {
	used := make(model.PortSet)
	var errs []error

	for _, src := range m.Sources {
		ports, err := src.UsedPorts(ctx)
		if err != nil {
			m.Log.Debug().Err(err).Msg("snapshot source failed, skipping")
			errs = append(errs, err)
			continue
		}
		used.Merge(ports)
	}

	if len(m.Sources) > 0 && len(errs) == len(m.Sources) {
		return used, errors.Join(errs...)
	}
	return used, nil
}

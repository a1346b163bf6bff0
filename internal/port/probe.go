package port

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// DefaultProbeHost is the address probes bind to.
const DefaultProbeHost = "127.0.0.1"

// Prober performs a single availability check for a port.
// A nil error means the port could be bound and was released again.
type Prober interface {
	Probe(port int) error
}

// BindProber checks availability by binding a listener on Host and closing
// it immediately.
//
// The socket is opened with exclusive-address semantics (see
// exclusiveControl), so a port held by another socket, including one in
// TIME_WAIT on unix, is reported as unavailable rather than shared.
type BindProber struct {
	// Host is the bind address. Empty means DefaultProbeHost.
	Host string

	// Network is "tcp" or "udp". Empty means "tcp".
	Network string
}

// Probe binds the port and releases it. The listener is closed via defer on
// every path that opened one.
func (p BindProber) Probe(port int) error {
	host := p.Host
	if host == "" {
		host = DefaultProbeHost
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	lc := net.ListenConfig{Control: exclusiveControl}

	switch p.Network {
	case "", "tcp":
		ln, err := lc.Listen(context.Background(), "tcp", addr)
		if err != nil {
			return err
		}
		defer func() { _ = ln.Close() }()
		return nil

	case "udp":
		conn, err := lc.ListenPacket(context.Background(), "udp", addr)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()
		return nil

	default:
		return fmt.Errorf("unsupported probe network %q", p.Network)
	}
}

// IsAvailable is a convenience wrapper for a one-off probe.
func (p BindProber) IsAvailable(port int) bool {
	return p.Probe(port) == nil
}

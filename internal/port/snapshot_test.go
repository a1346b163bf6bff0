package port

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/devport/internal/model"
)

// staticSnapshot returns a Snapshotter that always reports the given ports.
func staticSnapshot(ports ...int) Snapshotter {
	return SnapshotFunc(func(context.Context) (model.PortSet, error) {
		return model.NewPortSet(ports...), nil
	})
}

// failingSnapshot returns a Snapshotter that always fails.
func failingSnapshot(msg string) Snapshotter {
	return SnapshotFunc(func(context.Context) (model.PortSet, error) {
		return nil, errors.New(msg)
	})
}

// TestPortsFromConnections verifies that listeners, connection endpoints and
// UDP sockets all contribute their local port, and unbound sockets do not.
func TestPortsFromConnections(t *testing.T) {
	conns := []psnet.ConnectionStat{
		{Type: 1, Status: "LISTEN", Laddr: psnet.Addr{IP: "0.0.0.0", Port: 5432}},
		{Type: 1, Status: "ESTABLISHED", Laddr: psnet.Addr{IP: "127.0.0.1", Port: 41234}, Raddr: psnet.Addr{IP: "127.0.0.1", Port: 5432}},
		{Type: 2, Status: "NONE", Laddr: psnet.Addr{IP: "::", Port: 5353}},
		{Type: 1, Status: "CLOSE", Laddr: psnet.Addr{IP: "0.0.0.0", Port: 0}},
	}

	used := portsFromConnections(conns)
	assert.Equal(t, []int{5353, 5432, 41234}, used.Sorted())
}

// TestSystemSnapshot_SeesListener verifies against the real connection table
// that a live listener appears in the snapshot.
func TestSystemSnapshot_SeesListener(t *testing.T) {
	_, port := listenLoopback(t)

	used, err := SystemSnapshot{}.UsedPorts(context.Background())
	if err != nil {
		t.Skipf("connection table not readable here: %v", err)
	}
	assert.True(t, used.Has(port), "listener on %d should be in the snapshot", port)
}

// TestSystemSnapshot_Kind verifies the gopsutil kind chosen per network.
func TestSystemSnapshot_Kind(t *testing.T) {
	assert.Equal(t, "inet", SystemSnapshot{}.kind())
	assert.Equal(t, "tcp", SystemSnapshot{Network: "tcp"}.kind())
	assert.Equal(t, "udp", SystemSnapshot{Network: "udp"}.kind())
	assert.Equal(t, "inet", SystemSnapshot{Network: "sctp"}.kind())
}

// TestSystemSnapshot_UDPOnly verifies against the real connection table that
// a UDP-only snapshot leaves out a TCP listener.
func TestSystemSnapshot_UDPOnly(t *testing.T) {
	_, port := listenLoopback(t)

	used, err := SystemSnapshot{Network: "udp"}.UsedPorts(context.Background())
	if err != nil {
		t.Skipf("connection table not readable here: %v", err)
	}
	assert.False(t, used.Has(port), "TCP listener on %d should not be in a UDP snapshot", port)
}

// TestMultiSnapshot_Union verifies that all sources are merged.
func TestMultiSnapshot_Union(t *testing.T) {
	m := MultiSnapshot{
		Sources: []Snapshotter{staticSnapshot(80, 443), staticSnapshot(443, 8080)},
		Log:     zerolog.Nop(),
	}

	used, err := m.UsedPorts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{80, 443, 8080}, used.Sorted())
}

// TestMultiSnapshot_PartialFailure verifies that one failing source does not
// discard what the others reported.
func TestMultiSnapshot_PartialFailure(t *testing.T) {
	m := MultiSnapshot{
		Sources: []Snapshotter{failingSnapshot("docker down"), staticSnapshot(3000)},
	}

	used, err := m.UsedPorts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3000}, used.Sorted())
}

// TestMultiSnapshot_AllFail verifies that an error is reported only when
// no source succeeded.
func TestMultiSnapshot_AllFail(t *testing.T) {
	m := MultiSnapshot{
		Sources: []Snapshotter{failingSnapshot("a"), failingSnapshot("b")},
	}

	used, err := m.UsedPorts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
	assert.Empty(t, used)
}

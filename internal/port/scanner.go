package port

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shinji-kodama/devport/internal/model"
)

// Scanner finds available ports on the local host.
//
// It composes two primitives: a Snapshotter, which lists ports already bound
// on the host, and a Prober, which performs the authoritative bind check.
// Every exported method is synchronous and single-threaded; a scan over N
// candidates performs up to N probes before returning. Callers that need
// bounded latency should pass a narrow range.
//
// A Scanner holds no per-scan state and can be shared, but concurrent scans
// race with each other (and with every other process on the host) exactly
// as separate processes would.
type Scanner struct {
	prober   Prober
	snapshot Snapshotter
	log      zerolog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProber replaces the default loopback TCP BindProber.
func WithProber(p Prober) Option {
	return func(s *Scanner) { s.prober = p }
}

// WithSnapshotter replaces the default SystemSnapshot.
func WithSnapshotter(src Snapshotter) Option {
	return func(s *Scanner) { s.snapshot = src }
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

// NewScanner creates a Scanner. Without options it probes TCP on 127.0.0.1,
// snapshots the host connection table, and logs nothing.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		prober:   BindProber{Host: DefaultProbeHost, Network: "tcp"},
		snapshot: SystemSnapshot{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindFirstAvailable validates [start, end] and scans it in direction dir.
//
// It returns (port, true, nil) for the first candidate that passes the bind
// probe, and (model.NoPort, false, nil) when the range is exhausted.
// Invalid bounds return an *model.OutOfRangeError or *model.InvalidRangeError,
// and an unknown dir returns model.ErrInvalidDirection, before any snapshot
// or probe work is done.
func (s *Scanner) FindFirstAvailable(start, end int, dir model.Direction) (int, bool, error) {
	r, err := model.NewPortRange(start, end)
	if err != nil {
		return model.NoPort, false, err
	}
	if err := checkDirection(dir); err != nil {
		return model.NoPort, false, err
	}
	port, ok := s.Scan(r, dir)
	return port, ok, nil
}

// FindOrNil is FindFirstAvailable returning nil instead of a sentinel when
// nothing is available.
func (s *Scanner) FindOrNil(start, end int, dir model.Direction) (*int, error) {
	port, ok, err := s.FindFirstAvailable(start, end, dir)
	if err != nil || !ok {
		return nil, err
	}
	return &port, nil
}

// FindNextInServiceRange scans 1024-49151 upward.
func (s *Scanner) FindNextInServiceRange() (int, bool) {
	return s.Scan(model.ServiceRange(), model.Ascending)
}

// FindLastInServiceRange scans 49151-1024 downward.
func (s *Scanner) FindLastInServiceRange() (int, bool) {
	return s.Scan(model.ServiceRange(), model.Descending)
}

// FindNextFrom scans upward from start to the end of the service range.
func (s *Scanner) FindNextFrom(start int) (int, bool, error) {
	return s.FindFirstAvailable(start, model.LastServicePort, model.Ascending)
}

// FindLastDownTo scans downward from the end of the service range, stopping
// after end.
func (s *Scanner) FindLastDownTo(end int) (int, bool, error) {
	return s.FindFirstAvailable(end, model.LastServicePort, model.Descending)
}

// Scan walks an already validated range. It takes one snapshot, skips every
// candidate in it without probing, and returns the first candidate whose
// probe succeeds. A failed probe only moves the scan on to the next
// candidate. Scan does no validation: any dir other than model.Descending
// is walked ascending.
func (s *Scanner) Scan(r model.PortRange, dir model.Direction) (int, bool) {
	used := s.usedPorts()

	s.log.Debug().
		Str("range", r.String()).
		Str("direction", dir.String()).
		Int("snapshot", len(used)).
		Msg("scan started")

	for port := range r.All(dir) {
		if s.check(port, used) {
			s.log.Debug().Int("port", port).Msg("available port found")
			return port, true
		}
	}

	s.log.Debug().Str("range", r.String()).Msg("no available port in range")
	return model.NoPort, false
}

// FindSeveral returns up to n distinct available ports from a single
// traversal of [start, end] in direction dir, using one snapshot. Fewer
// than n ports (possibly none) are returned when the range runs out; that
// is not an error.
//
// Probes release each port immediately, so the ports are only known to have
// been free at the time they were probed.
func (s *Scanner) FindSeveral(start, end int, dir model.Direction, n int) ([]int, error) {
	r, err := model.NewPortRange(start, end)
	if err != nil {
		return nil, err
	}
	if err := checkDirection(dir); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", n)
	}

	used := s.usedPorts()
	found := make([]int, 0, min(n, r.Len()))

	for port := range r.All(dir) {
		if !s.check(port, used) {
			continue
		}
		found = append(found, port)
		if len(found) == n {
			break
		}
	}

	s.log.Debug().
		Str("range", r.String()).
		Int("requested", n).
		Int("found", len(found)).
		Msg("multi-port scan finished")
	return found, nil
}

// IsAvailable runs the bind probe for a single port, without consulting the
// snapshot. Invalid port numbers are never available.
func (s *Scanner) IsAvailable(port int) bool {
	if !model.IsValidPort(port) {
		return false
	}
	return s.prober.Probe(port) == nil
}

// UsedPorts returns a fresh snapshot of bound ports. A snapshot failure
// yields an empty set.
func (s *Scanner) UsedPorts() model.PortSet {
	return s.usedPorts()
}

// checkDirection rejects Direction values other than Ascending and Descending.
func checkDirection(dir model.Direction) error {
	if !dir.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidDirection, dir)
	}
	return nil
}

// check applies the two-tier test to one candidate.
func (s *Scanner) check(port int, used model.PortSet) bool {
	if used.Has(port) {
		s.log.Trace().Int("port", port).Msg("skipping port in snapshot")
		return false
	}
	if err := s.prober.Probe(port); err != nil {
		s.log.Trace().Int("port", port).Err(err).Msg("bind probe failed")
		return false
	}
	return true
}

// usedPorts takes the per-call snapshot. Failure is not fatal: the probe
// alone still gives a correct answer, just with more bind attempts.
func (s *Scanner) usedPorts() model.PortSet {
	if s.snapshot == nil {
		return model.PortSet{}
	}
	used, err := s.snapshot.UsedPorts(context.Background())
	if err != nil {
		s.log.Debug().Err(err).Msg("used-port snapshot unavailable, probing every candidate")
	}
	if used == nil {
		used = model.PortSet{}
	}
	return used
}

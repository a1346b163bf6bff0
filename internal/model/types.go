package model

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

const (
	// FirstPort is the lowest valid TCP/UDP port number.
	FirstPort = 1

	// LastPort is the highest valid TCP/UDP port number (2^16 - 1).
	LastPort = 65535

	// FirstServicePort is the start of the IANA registered (service) range.
	FirstServicePort = 1024

	// LastServicePort is the end of the IANA registered (service) range.
	// Ports above it belong to the dynamic/ephemeral range (49152-65535).
	LastServicePort = 49151

	// NoPort is the sentinel returned in place of a port when a scan finds
	// nothing. It carries no meaning beyond "absent".
	NoPort = -1
)

// IsValidPort reports whether v is a usable port number (1-65535).
func IsValidPort(v int) bool {
	return v >= FirstPort && v <= LastPort
}

// Direction selects the traversal order of a scan within a PortRange.
// It never changes which ports are candidates, only the order in which
// they are visited.
type Direction string

const (
	// Ascending visits start, start+1, ..., end.
	Ascending Direction = "asc"

	// Descending visits end, end-1, ..., start.
	Descending Direction = "desc"
)

// String returns the string representation of Direction.
func (d Direction) String() string {
	return string(d)
}

// IsValid checks whether the Direction value is one of the predefined values.
func (d Direction) IsValid() bool {
	switch d {
	case Ascending, Descending:
		return true
	default:
		return false
	}
}

// ParseDirection converts a string to a Direction. Besides "asc" and "desc"
// the long forms "ascending" and "descending" are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: asc, desc)", ErrInvalidDirection, s)
	}
}

// PortRange is a closed interval [Start, End] of port numbers.
//
// A PortRange obtained from NewPortRange always satisfies
// FirstPort <= Start <= End <= LastPort. The zero value is not a valid range;
// construct one per scan call.
type PortRange struct {
	// Start is the lowest port in the range (inclusive).
	Start int `json:"start"`

	// End is the highest port in the range (inclusive).
	End int `json:"end"`
}

// ServiceRange returns the IANA registered range [1024, 49151].
func ServiceRange() PortRange {
	return PortRange{Start: FirstServicePort, End: LastServicePort}
}

// NewPortRange validates the bounds and returns the range.
//
// Each bound is checked against 1-65535 first (start before end), so the
// returned OutOfRangeError names the first offending bound. Only then is
// start <= end enforced, regardless of the direction the caller intends to
// scan in.
func NewPortRange(start, end int) (PortRange, error) {
	if !IsValidPort(start) {
		return PortRange{}, &OutOfRangeError{Bound: BoundStart, Value: start}
	}
	if !IsValidPort(end) {
		return PortRange{}, &OutOfRangeError{Bound: BoundEnd, Value: end}
	}
	if start > end {
		return PortRange{}, &InvalidRangeError{Start: start, End: end}
	}
	return PortRange{Start: start, End: end}, nil
}

// Contains reports whether port lies within the range.
func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

// Len returns the number of ports in the range.
func (r PortRange) Len() int {
	return r.End - r.Start + 1
}

// All yields the candidates of the range in traversal order for d.
// Both directions yield exactly the same ports. Any d other than Descending
// is traversed ascending; callers that accept a Direction from outside
// check IsValid first.
func (r PortRange) All(d Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		if d == Descending {
			for p := r.End; p >= r.Start; p-- {
				if !yield(p) {
					return
				}
			}
			return
		}
		for p := r.Start; p <= r.End; p++ {
			if !yield(p) {
				return
			}
		}
	}
}

// String returns the range as "start-end".
func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// PortSet is a set of port numbers, used for the snapshot of ports that are
// bound on the host at the moment of a query.
type PortSet map[int]struct{}

// NewPortSet builds a PortSet from the given ports.
func NewPortSet(ports ...int) PortSet {
	s := make(PortSet, len(ports))
	for _, p := range ports {
		s.Add(p)
	}
	return s
}

// Add inserts port into the set. Invalid port numbers (e.g. 0 for unbound
// sockets) are ignored.
func (s PortSet) Add(port int) {
	if IsValidPort(port) {
		s[port] = struct{}{}
	}
}

// Has reports whether port is in the set. A nil set contains nothing.
func (s PortSet) Has(port int) bool {
	_, ok := s[port]
	return ok
}

// Merge adds every member of other to s.
func (s PortSet) Merge(other PortSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s PortSet) Sorted() []int {
	ports := make([]int, 0, len(s))
	for p := range s {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

// Within returns the sorted members that fall inside r.
func (s PortSet) Within(r PortRange) []int {
	var ports []int
	for _, p := range s.Sorted() {
		if r.Contains(p) {
			ports = append(ports, p)
		}
	}
	return ports
}

// PublishedPort is a host port published by a container runtime.
type PublishedPort struct {
	// ContainerName is the human-readable container name, without the
	// leading "/" the Docker API reports.
	ContainerName string `json:"containerName"`

	// HostPort is the port bound on the host side of the mapping.
	HostPort int `json:"hostPort"`

	// Protocol is "tcp" or "udp".
	Protocol string `json:"protocol"`
}

// Package port implements local port discovery for the devport CLI.
//
// The core algorithm is a bounded linear scan:
//
//	for each candidate in range (ascending or descending):
//	    skip if the candidate is in the used-port snapshot
//	    return it if a loopback bind probe succeeds
//
// The snapshot (taken once per call from the host connection table, and
// optionally from Docker published ports) only saves probe attempts. The
// bind probe is the authoritative availability check. A returned port was
// bound and released at the moment of return; nothing guarantees it is
// still free afterwards.
package port

//go:build unix

package port

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// exclusiveControl clears SO_REUSEADDR, which the net package enables on
// listeners by default, so the bind fails while any other socket still
// holds the port.
func exclusiveControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 0)
	})
	if err != nil {
		return err
	}
	return sockErr
}

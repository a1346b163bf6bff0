//go:build !unix && !windows

package port

import "syscall"

func exclusiveControl(_, _ string, _ syscall.RawConn) error {
	return nil
}

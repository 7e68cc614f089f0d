//go:build linux

package sockettune

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlListener sets SO_REUSEADDR on the listening socket so a restarted
// server can rebind the same port immediately instead of waiting out
// TIME_WAIT. The teacher's tuning_linux.go left this as an aspirational
// comment ("In production, you'd use golang.org/x/sys/unix for proper
// TCPInfo access"); here it's wired for real via the rawConn.Control hook
// net.ListenConfig already exposes, rather than the raw syscall package.
func controlListener(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

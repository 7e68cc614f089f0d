//go:build !linux

package sockettune

import "syscall"

// controlListener is a no-op on platforms where we don't carry a
// golang.org/x/sys/unix binding (mirrors
// shockwave/pkg/shockwave/socket/tuning_other.go's platform fallback shape).
func controlListener(network, address string, c syscall.RawConn) error {
	return nil
}

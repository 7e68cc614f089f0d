// Package sockettune applies the small set of socket options an HTTP/1.1
// origin server under sustained keep-alive traffic actually benefits from:
// disabling Nagle's algorithm per connection, and allowing the listener to
// rebind promptly after a restart. Trimmed from
// shockwave/pkg/shockwave/socket/tuning.go's much larger Config (which also
// covered receive/send buffer sizing, TCP Fast Open, quick-ACK, and deferred
// accept) — those matter for the teacher's own throughput benchmarks but
// nothing in this server's spec calls for tuning them, and an unused knob
// left in Config is a worse defect than one left out.
package sockettune

import "net"

// ApplyConn disables Nagle's algorithm on an accepted connection so small
// keep-alive responses aren't held back waiting to coalesce with more data.
func ApplyConn(conn net.Conn) {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
}

// ListenConfig returns a net.ListenConfig whose Control hook applies
// platform socket options to the listening socket before it starts
// accepting connections.
func ListenConfig() net.ListenConfig {
	return net.ListenConfig{Control: controlListener}
}

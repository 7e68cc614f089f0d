// Package bufpool pools the fixed-size receive buffers connections read
// requests into. Adapted from shockwave/pkg/shockwave/buffer_pool.go, which
// keeps six size classes (2KB–64KB) for a general-purpose server; this
// server only ever reads one size — spec §1/§9's firm 8192-byte head+body
// cap — so a single sync.Pool class replaces the size-class dispatch table.
package bufpool

import "sync"

// Size is the fixed buffer size, matching httpwire.MaxRequestBytes.
const Size = 8192

var pool = sync.Pool{
	New: func() any {
		buf := make([]byte, Size)
		return &buf
	},
}

// Get returns an 8192-byte buffer, zero-length-prefixed to full capacity.
func Get() []byte {
	bufPtr := pool.Get().(*[]byte)
	return (*bufPtr)[:Size]
}

// Put returns buf to the pool. Buffers of the wrong capacity are discarded
// rather than risking a short read on the next Get.
func Put(buf []byte) {
	if cap(buf) != Size {
		return
	}
	buf = buf[:Size]
	pool.Put(&buf)
}

package sockettune

import (
	"context"
	"net"
	"testing"
)

func TestApplyConnOnTCPConnDoesNotError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	conn := <-accepted
	defer conn.Close()

	// Should not panic on a real *net.TCPConn.
	ApplyConn(conn)
}

func TestApplyConnIgnoresNonTCPConn(t *testing.T) {
	// A net.Conn backed by neither TCP nor UDP must be a no-op, not a panic.
	ApplyConn(nil)
}

func TestListenConfigBindsAndAccepts(t *testing.T) {
	lc := ListenConfig()
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()
}

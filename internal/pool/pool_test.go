package pool

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yourusername/multihttpd/internal/logging"
	"go.uber.org/goleak"
)

type fakeConn struct {
	net.Conn
	closed atomic.Bool
}

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

func (f *fakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 1}
}

func TestPoolProcessesAllSubmittedConnections(t *testing.T) {
	defer goleak.VerifyNone(t)

	var processed int32
	var wg sync.WaitGroup
	wg.Add(5)

	p := New(2, 2, func(c net.Conn) {
		atomic.AddInt32(&processed, 1)
		wg.Done()
	}, logging.New())
	p.Start()

	for i := 0; i < 5; i++ {
		p.Submit(&fakeConn{})
	}
	wg.Wait()
	p.Close()

	if got := atomic.LoadInt32(&processed); got != 5 {
		t.Fatalf("processed = %d, want 5", got)
	}
}

func TestPoolRecoversHandlerPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran int32
	p := New(1, 0, func(c net.Conn) {
		atomic.AddInt32(&ran, 1)
		panic("handler exploded")
	}, logging.New())
	p.Start()

	fc := &fakeConn{}
	p.Submit(fc)

	// Submit blocks until the worker is free to receive again; if the panic
	// had killed the worker goroutine, this second Submit would hang forever
	// since nothing would ever drain the queue.
	submitted := make(chan struct{})
	go func() {
		p.Submit(&fakeConn{})
		close(submitted)
	}()
	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("worker pool appears to have died after a handler panic")
	}
	p.Close()

	if atomic.LoadInt32(&ran) != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	if !fc.closed.Load() {
		t.Error("connection should be closed after a recovered panic")
	}
}

func TestPoolStatsTracksActiveWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	started := make(chan struct{}, 1)

	p := New(1, 1, func(c net.Conn) {
		started <- struct{}{}
		<-release
	}, logging.New())
	p.Start()

	p.Submit(&fakeConn{})
	<-started

	stats := p.Stats()
	if stats.Active != 1 {
		t.Errorf("Active = %d, want 1", stats.Active)
	}
	if stats.Workers != 1 {
		t.Errorf("Workers = %d, want 1", stats.Workers)
	}

	close(release)
	p.Close()

	if p.Stats().Active != 0 {
		t.Errorf("Active after Close = %d, want 0", p.Stats().Active)
	}
}

func TestAcceptorStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	p := New(1, 1, func(c net.Conn) { c.Close() }, logging.New())
	p.Start()
	a := NewAcceptor(ln, p, logging.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil on clean shutdown", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acceptor.Run did not return after context cancellation")
	}
	p.Close()
}

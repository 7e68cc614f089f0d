// Package pool implements spec §4.8's accept loop and bounded worker pool: a
// fixed number of long-lived workers drain a bounded hand-off queue of
// accepted connections, with a mutex-guarded active-worker counter (the spec
// calls for a mutex here, not an atomic, so Stats and the counter share one
// lock). Grounded on the channel-based worker/job-queue shape in
// slicingmelon-gobypass403's requestworkerpool.go, simplified down from its
// atomic-counter, self-scaling design to the fixed-size pool spec.md
// describes, and on shockwave/pkg/shockwave/server/server_shockwave.go's
// Serve() accept loop for the Acceptor side (that loop spawns one goroutine
// per connection with an optional semaphore; here the semaphore becomes the
// queue itself and the goroutines are fixed in number).
package pool

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/yourusername/multihttpd/internal/logging"
)

// statusInterval is how often Acceptor.Run emits the periodic pool status
// line (spec §6).
const statusInterval = 30 * time.Second

// Stats is a point-in-time snapshot of pool load, logged on saturation and
// available to callers for health reporting.
type Stats struct {
	Active   int
	Workers  int
	QueueLen int
	QueueCap int
}

// Handler processes one accepted connection to completion (spec §4.7's
// per-connection state machine lives behind this func).
type Handler func(net.Conn)

// Pool is a fixed-size worker pool draining a bounded channel of accepted
// connections.
type Pool struct {
	workers int
	queue   chan net.Conn
	handle  Handler
	logger  *logging.Logger

	mu     sync.Mutex
	active int

	wg sync.WaitGroup
}

// New builds a Pool with the given worker count and queue depth. Start must
// be called to spin up the workers.
func New(workers, queueSize int, handle Handler, logger *logging.Logger) *Pool {
	return &Pool{
		workers: workers,
		queue:   make(chan net.Conn, queueSize),
		handle:  handle,
		logger:  logger,
	}
}

// Start launches the fixed worker goroutines. Each runs until the queue is
// closed and drained.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
}

func (p *Pool) runWorker() {
	defer p.wg.Done()
	for conn := range p.queue {
		p.incrActive()
		p.serveSafely(conn)
		p.decrActive()
	}
}

// serveSafely runs the handler with panic recovery: a handler panic must not
// take down the worker goroutine or the pool (spec §4.8), only the one
// connection it was serving.
func (p *Pool) serveSafely(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Event("recovered panic in connection handler: %v", r)
			conn.Close()
		}
	}()
	p.handle(conn)
}

// Submit hands a connection off to the worker pool, blocking if the queue is
// full. The acceptor samples active-worker load before enqueueing and warns
// when every worker is already busy (spec §4.8), rather than waiting for the
// queue itself to fill.
func (p *Pool) Submit(conn net.Conn) {
	stats := p.Stats()
	if stats.Active >= p.workers {
		p.logger.Saturated(stats.Active, stats.Workers)
	}
	p.queue <- conn
}

// Stats reports current load under the same mutex that guards the active
// counter.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	return Stats{
		Active:   active,
		Workers:  p.workers,
		QueueLen: len(p.queue),
		QueueCap: cap(p.queue),
	}
}

func (p *Pool) incrActive() {
	p.mu.Lock()
	p.active++
	p.mu.Unlock()
}

func (p *Pool) decrActive() {
	p.mu.Lock()
	p.active--
	p.mu.Unlock()
}

// Close stops accepting new work and waits for in-flight connections to
// finish. Submit must not be called again after Close.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// Acceptor owns the listening socket and feeds accepted connections into a
// Pool.
type Acceptor struct {
	listener net.Listener
	pool     *Pool
	logger   *logging.Logger
}

// NewAcceptor pairs a listener with the pool that will process its
// connections.
func NewAcceptor(listener net.Listener, pool *Pool, logger *logging.Logger) *Acceptor {
	return &Acceptor{listener: listener, pool: pool, logger: logger}
}

// Run accepts connections until ctx is cancelled or the listener errors out.
// Cancellation closes the listener, which unblocks Accept with an error Run
// treats as a clean shutdown rather than a failure.
func (a *Acceptor) Run(ctx context.Context) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			a.listener.Close()
		case <-stopped:
		}
	}()

	go a.reportStatus(ctx, stopped)

	for {
		conn, err := a.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			a.logger.Event("accept error: %v", err)
			continue
		}
		a.logger.ConnOpen(conn.RemoteAddr().String())
		a.pool.Submit(conn)
	}
}

// reportStatus emits the periodic pool status line (spec §6) until ctx is
// cancelled or Run returns.
func (a *Acceptor) reportStatus(ctx context.Context, stopped <-chan struct{}) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stats := a.pool.Stats()
			a.logger.PoolStatus(stats.Active, stats.Workers)
		case <-ctx.Done():
			return
		case <-stopped:
			return
		}
	}
}

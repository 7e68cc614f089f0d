// Package connection implements spec §4.7's per-connection state machine:
// Reading -> Dispatching -> Writing -> (Reading | Closed). Adapted from
// shockwave/pkg/shockwave/http11/connection.go's Serve() loop, stripped of
// its lock-free pooled-object machinery (this server has no zero-allocation
// budget to protect) and generalized from "keep reading until the handler
// says stop" to the explicit states, read cap, and request cap spec.md
// names.
package connection

import (
	"bufio"
	"net"
	"strings"
	"time"

	"github.com/yourusername/multihttpd/internal/bufpool"
	"github.com/yourusername/multihttpd/internal/config"
	"github.com/yourusername/multihttpd/internal/hostguard"
	"github.com/yourusername/multihttpd/internal/httpwire"
	"github.com/yourusername/multihttpd/internal/logging"
	"github.com/yourusername/multihttpd/internal/sockettune"
)

// Handlers dispatches GET and POST requests that already passed the host
// guard (spec §4.5, §4.6); the path guard runs inside Get. Anything else is a
// 405 the driver builds itself.
type Handlers interface {
	Get(req *httpwire.Request) *httpwire.Response
	Post(req *httpwire.Request) *httpwire.Response
}

// Connection drives one accepted TCP connection from accept to close.
type Connection struct {
	conn      net.Conn
	cfg       *config.ServerConfig
	authority *config.Authority
	handlers  Handlers
	logger    *logging.Logger
	peer      string
}

// New constructs a Connection ready to Serve.
func New(conn net.Conn, cfg *config.ServerConfig, authority *config.Authority, handlers Handlers, logger *logging.Logger) *Connection {
	sockettune.ApplyConn(conn)
	return &Connection{
		conn:      conn,
		cfg:       cfg,
		authority: authority,
		handlers:  handlers,
		logger:    logger,
		peer:      conn.RemoteAddr().String(),
	}
}

// Serve runs the connection's request loop until the connection closes,
// either because the peer disconnected, the idle timeout elapsed, the
// request cap was reached, or a response demanded Connection: close.
func (c *Connection) Serve() {
	defer c.conn.Close()

	writer := bufio.NewWriter(c.conn)
	requests := 0

	for {
		buf := bufpool.Get()
		n, atCap, readErr := c.readOne(buf)
		if n == 0 {
			bufpool.Put(buf)
			c.logger.ConnClose(c.peer, requests)
			return
		}

		req, parseErr := httpwire.Parse(buf[:n], atCap)
		if parseErr != nil {
			c.respondAndClose(writer, 400, requests)
			bufpool.Put(buf)
			return
		}
		requests++
		c.logger.RequestLine(c.peer, req.Method, req.Target, req.Version)

		resp, forceClose := c.dispatch(req)

		willHitCap := requests >= c.cfg.MaxRequests
		closeConn := forceClose || willHitCap || !c.keepAliveRequested(req)

		connectionValue := "keep-alive"
		if closeConn {
			connectionValue = "close"
		} else {
			resp.Header.Set("keep-alive", "timeout=30, max=100")
		}

		err := resp.Encode(writer, connectionValue)
		bufpool.Put(buf)
		if err == nil {
			err = writer.Flush()
		}
		if err != nil {
			c.logger.ConnClose(c.peer, requests)
			return
		}
		c.logger.Response(c.peer, resp.Status, len(resp.Body))

		if readErr != nil || closeConn {
			c.logger.ConnClose(c.peer, requests)
			return
		}
	}
}

// readOne performs spec §4.7's single bounded read: at most
// httpwire.MaxRequestBytes in one call, under the idle-timeout deadline.
// It returns the bytes read, whether the read filled the buffer entirely
// (atCap — the signal httpwire.Parse uses to distinguish a truncated-by-cap
// request from a merely malformed one), and any read error. A read error
// with n == 0 means the connection should close without a response (timeout,
// EOF, or reset) per spec §4.7 and §7.
func (c *Connection) readOne(buf []byte) (n int, atCap bool, err error) {
	if err = c.conn.SetReadDeadline(time.Now().Add(c.cfg.IdleTimeout)); err != nil {
		return 0, false, err
	}
	n, err = c.conn.Read(buf)
	return n, n == len(buf), err
}

// dispatch runs the host guard then method dispatch (spec §4.7's
// Dispatching state) and reports whether the connection must force-close
// after this response — spec §7's error table mandates close on any 403
// (Host mismatch, or a path-traversal rejection from the handler) and on a
// Missing Host header.
func (c *Connection) dispatch(req *httpwire.Request) (*httpwire.Response, bool) {
	outcome, observed := hostguard.Check(req.Header.Get("host"), c.authority)
	switch outcome {
	case hostguard.Missing:
		c.logger.MissingHost()
		return httpwire.NewResponse(400), true
	case hostguard.Mismatch:
		c.logger.HostMismatch(observed)
		return httpwire.NewResponse(403), true
	}

	switch req.Method {
	case "GET":
		resp := c.handlers.Get(req)
		return resp, resp.Status == 403
	case "POST":
		resp := c.handlers.Post(req)
		return resp, resp.Status == 403
	default:
		resp := httpwire.NewResponse(405)
		resp.Header.Set("allow", "GET, POST")
		return resp, false
	}
}

// keepAliveRequested implements spec §4.7's version-dependent default:
// HTTP/1.1 stays open unless Connection: close was sent; HTTP/1.0 closes
// unless Connection: keep-alive was sent.
func (c *Connection) keepAliveRequested(req *httpwire.Request) bool {
	connHeader := req.Header.Get("connection")
	if req.IsHTTP10() {
		return strings.EqualFold(connHeader, "keep-alive")
	}
	return !strings.EqualFold(connHeader, "close")
}

// respondAndClose writes a plain status response (used for parse failures,
// where there's no parsed Request to build a richer response from) and logs
// the close.
func (c *Connection) respondAndClose(writer *bufio.Writer, status int, requests int) {
	resp := httpwire.NewResponse(status)
	if err := resp.Encode(writer, "close"); err == nil {
		_ = writer.Flush()
		c.logger.Response(c.peer, status, 0)
	}
	c.logger.ConnClose(c.peer, requests)
}

// Package logging is the opaque log(event) sink spec §1/§6 treats as an
// external collaborator. Every example repo in the pack that logs at all
// (dharsanguruparan/VaultDrop's cmd/server/main.go, internal/server/server.go)
// reaches for the standard library's log package directly rather than a
// third-party structured logger — logrus only ever shows up as an indirect
// dependency of cobra/asynq there, never imported by application code — so
// this wraps log.Logger instead of reaching past it.
package logging

import (
	"fmt"
	"log"
	"os"
	"time"
)

// timestampLayout renders the "YYYY-MM-DD HH:MM:SS" line prefix.
const timestampLayout = "2006-01-02 15:04:05"

// Logger emits one line per event, each prefixed with the
// "YYYY-MM-DD HH:MM:SS" local-time timestamp spec §6 specifies.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to stderr.
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", 0)}
}

// Event logs a single formatted line.
func (lg *Logger) Event(format string, args ...any) {
	lg.l.Print(time.Now().Format(timestampLayout) + " " + fmt.Sprintf(format, args...))
}

// Startup logs the server's bind address, worker count, and document root.
func (lg *Logger) Startup(addr string, workers int, docRoot string) {
	lg.Event("server starting on %s with %d workers, document root %s", addr, workers, docRoot)
}

// ConnOpen logs a new connection's peer address.
func (lg *Logger) ConnOpen(peer string) {
	lg.Event("conn %s: open", peer)
}

// ConnClose logs a connection closing after serving n requests.
func (lg *Logger) ConnClose(peer string, requests int) {
	lg.Event("conn %s: close after %d request(s)", peer, requests)
}

// RequestLine logs the parsed request line.
func (lg *Logger) RequestLine(peer, method, target, version string) {
	lg.Event("conn %s: %s %s %s", peer, method, target, version)
}

// Response logs the outcome of dispatching a request.
func (lg *Logger) Response(peer string, status int, bytes int) {
	lg.Event("conn %s: response %d (%d bytes)", peer, status, bytes)
}

// PathTraversal logs a rejected path-traversal attempt (spec §6 security event).
func (lg *Logger) PathTraversal(target string) {
	lg.Event("security: Path traversal attempt - %s", target)
}

// HostMismatch logs a rejected Host header value.
func (lg *Logger) HostMismatch(observed string) {
	lg.Event("security: Host mismatch - %s", observed)
}

// MissingHost logs a request with no Host header.
func (lg *Logger) MissingHost() {
	lg.Event("security: Missing Host header")
}

// Saturated logs the worker-pool saturation warning (spec §4.8, §6).
func (lg *Logger) Saturated(active, total int) {
	lg.Event("pool: saturated, queuing (active=%d/%d)", active, total)
}

// PoolStatus logs a periodic active/total status line.
func (lg *Logger) PoolStatus(active, total int) {
	lg.Event("pool: status %d/%d", active, total)
}

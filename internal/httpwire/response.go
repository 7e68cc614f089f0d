package httpwire

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yourusername/multihttpd/internal/clock"
)

// reasonPhrases covers the status codes this server actually emits (spec
// §4.5–§4.7, §7). Unlike the teacher's pre-compiled byte-slice status lines
// (optimized for a zero-allocation hot path this server doesn't need), a
// plain map is enough — this server answers a small, fixed set of codes.
var reasonPhrases = map[int]string{
	200: "OK",
	201: "Created",
	400: "Bad Request",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	415: "Unsupported Media Type",
	500: "Internal Server Error",
}

// Response is spec §3's status + headers + body, produced by a handler and
// consumed exactly once by Encode.
type Response struct {
	Status int
	Header *Header
	Body   []byte
}

// NewResponse creates a Response with the given status and an empty header
// set ready for the handler to populate.
func NewResponse(status int) *Response {
	return &Response{Status: status, Header: NewHeader()}
}

// reasonPhrase returns the textual phrase for a status code, falling back to
// a generic label for anything outside reasonPhrases.
func reasonPhrase(status int) string {
	if p, ok := reasonPhrases[status]; ok {
		return p
	}
	return "Status " + strconv.Itoa(status)
}

// Encode writes r to w as an RFC 7230-compliant HTTP/1.1 message: status
// line, headers in insertion order, a blank line, then the body verbatim
// (spec §4.4). The status line always advertises HTTP/1.1 regardless of the
// request's declared version — an accepted simplification spec §9 notes
// explicitly.
//
// connectionDecision is the driver's close/keep-alive decision for this
// response (spec §4.7); Encode only fills it in if the handler didn't
// already set a Connection header.
func (r *Response) Encode(w io.Writer, connectionDecision string) error {
	r.Header.SetIfAbsent("date", clock.HTTPDate())
	r.Header.SetIfAbsent("server", "Multi-threaded HTTP Server")
	r.Header.SetIfAbsent("content-length", strconv.Itoa(len(r.Body)))
	r.Header.SetIfAbsent("connection", connectionDecision)

	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", r.Status, reasonPhrase(r.Status)); err != nil {
		return err
	}

	var writeErr error
	r.Header.VisitAll(func(key, value string) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(w, "%s: %s\r\n", canonicalHeaderKey(key), value)
	})
	if writeErr != nil {
		return writeErr
	}

	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}

	if len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return err
		}
	}
	return nil
}

// canonicalHeaderKey renders a lower-cased header key back into the
// conventional Title-Case form for the wire, e.g. "content-type" ->
// "Content-Type". Purely cosmetic: header names are matched case-
// insensitively on both sides of the wire.
func canonicalHeaderKey(key string) string {
	out := make([]byte, len(key))
	upperNext := true
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '-' {
			upperNext = true
			out[i] = c
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		out[i] = c
	}
	return string(out)
}

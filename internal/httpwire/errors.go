package httpwire

import "errors"

// Parse error classifications (spec §4.3).
var (
	// ErrMalformed covers any request line, header block, or body framing
	// violation: missing head terminator, wrong token count on the request
	// line, truncated body, chunked encoding.
	ErrMalformed = errors.New("httpwire: malformed request")

	// ErrTooLarge means the head+body exceeded MaxRequestBytes in a single
	// read (spec §9's "firm 8KB total cap" resolution of the source's
	// ambiguous truncation behavior).
	ErrTooLarge = errors.New("httpwire: request too large")

	// ErrUnsupportedVersion means the request line named neither HTTP/1.0
	// nor HTTP/1.1.
	ErrUnsupportedVersion = errors.New("httpwire: unsupported HTTP version")
)

// Package clock supplies the two leaf services spec §2.1 describes: RFC 7231
// date strings for response headers, and short random tokens for upload
// filenames.
package clock

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// rfc7231Layout is the IMF-fixdate format RFC 7231 §7.1.1.1 requires for the
// Date header, e.g. "Mon, 02 Jan 2006 15:04:05 GMT".
const rfc7231Layout = "Mon, 02 Jan 2006 15:04:05 GMT"

// HTTPDate returns the current time formatted per RFC 7231 §7.1.1.1,
// suitable for a Date header.
func HTTPDate() string {
	return time.Now().UTC().Format(rfc7231Layout)
}

// UploadStamp returns the YYYYMMDD_HHMMSS component of an upload filename.
func UploadStamp() string {
	return time.Now().Format("20060102_150405")
}

// Token4 returns a 4-character lowercase hex token for upload filenames.
//
// spec §9 flags the source's time-derived suffix as a probable bug (same-
// second collisions). We draw the suffix from a freshly generated UUIDv4
// instead, which is backed by a CSPRNG (crypto/rand) rather than wall-clock
// time — the cryptographically-strong source the spec's open question asks
// implementers to prefer.
func Token4() string {
	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")
	return hex[:4]
}

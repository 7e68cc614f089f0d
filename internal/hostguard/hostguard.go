// Package hostguard implements spec §4.2's Host authority check.
package hostguard

import (
	"strings"

	"github.com/yourusername/multihttpd/internal/config"
)

// Outcome classifies the result of checking a request's Host header.
type Outcome int

const (
	// Valid means the Host header is present and a member of the authority set.
	Valid Outcome = iota
	// Missing means no Host header was sent (→ 400 per spec §7).
	Missing
	// Mismatch means the Host header was present but not authoritative (→ 403).
	Mismatch
)

// Check implements spec §4.2: a missing Host header is Missing; a present
// value not in the authority set is Mismatch; otherwise Valid. Check trims
// surrounding whitespace itself, so a blank value counts as Missing; the
// comparison is otherwise case-sensitive (spec §4.2's trim-only contract).
func Check(hostHeader string, authority *config.Authority) (Outcome, string) {
	trimmed := strings.TrimSpace(hostHeader)
	if trimmed == "" {
		return Missing, ""
	}
	if !authority.Contains(trimmed) {
		return Mismatch, trimmed
	}
	return Valid, trimmed
}

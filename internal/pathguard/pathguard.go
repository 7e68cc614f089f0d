// Package pathguard implements spec §4.1's root-containment check: the pure
// function that turns a request target into either a safe absolute path or a
// rejection reason, before anything touches the filesystem.
package pathguard

import (
	"os"
	"path/filepath"
	"strings"
)

// Reason classifies why resolve rejected a target.
type Reason int

const (
	// ReasonNone means resolution succeeded.
	ReasonNone Reason = iota
	// ReasonForbidden means the target attempted to escape the document root.
	ReasonForbidden
	// ReasonNotFound means the resolved path doesn't exist, or isn't a regular file.
	ReasonNotFound
)

// Result is the outcome of Resolve.
type Result struct {
	Path   string // absolute, canonicalized path; valid only when Reason == ReasonNone
	Reason Reason
}

// Resolve implements spec §4.1's algorithm:
//  1. Strip the leading '/'.
//  2. Substitute "index.html" for an empty remainder.
//  3. Reject (Forbidden) targets containing ".." or a leading "//" — the
//     substring blocklist, logged by callers as a security event.
//  4. Join with root and normalize.
//  5. Reject (Forbidden) unless the normalized path is still rooted under
//     the normalized document root — the authoritative containment check.
//  6. Reject (NotFound) unless the result names an existing regular file.
func Resolve(target, root string) Result {
	if strings.Contains(target, "..") || strings.HasPrefix(target, "//") {
		return Result{Reason: ReasonForbidden}
	}

	rel := strings.TrimPrefix(target, "/")
	if rel == "" {
		rel = "index.html"
	}

	canonicalRoot, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return Result{Reason: ReasonForbidden}
	}

	joined := filepath.Join(canonicalRoot, rel)
	resolved, err := filepath.Abs(joined)
	if err != nil {
		return Result{Reason: ReasonForbidden}
	}

	if !isDescendant(resolved, canonicalRoot) {
		return Result{Reason: ReasonForbidden}
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return Result{Reason: ReasonNotFound}
	}

	return Result{Path: resolved, Reason: ReasonNone}
}

// isDescendant reports whether path is root itself or lies under it, after
// both have already been made absolute and clean. The comparison operates on
// the normalized strings only — never the raw, pre-join target — per spec
// §4.1's explicit requirement.
func isDescendant(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

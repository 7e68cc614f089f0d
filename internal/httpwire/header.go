package httpwire

import "strings"

// field is one header as it will be emitted: original casing of the value,
// lower-cased key for lookup.
type field struct {
	key   string // case-folded
	value string
}

// Header is spec §4.9's "small key-normalizing wrapper around the standard
// mapping": a case-insensitive, last-wins map that also preserves insertion
// order for emission. The teacher's http11.Header uses fixed-size byte
// arrays to stay allocation-free; this server has no such budget (spec asks
// for a "small wrapper", not a zero-alloc one), so a plain ordered slice is
// the simpler, equally idiomatic choice.
type Header struct {
	fields []field
}

// NewHeader returns an empty Header ready for use.
func NewHeader() *Header {
	return &Header{}
}

// Set stores value under key, case-folded. A later Set for the same key
// overwrites the earlier value in place — spec §3's "last-wins on
// duplicates" — without disturbing that key's original emission position.
func (h *Header) Set(key, value string) {
	k := strings.ToLower(key)
	for i := range h.fields {
		if h.fields[i].key == k {
			h.fields[i].value = value
			return
		}
	}
	h.fields = append(h.fields, field{key: k, value: value})
}

// SetIfAbsent stores value under key only if key isn't already present.
// Used by the encoder to fill in mandatory headers the handler didn't set.
func (h *Header) SetIfAbsent(key, value string) {
	if _, ok := h.get(key); ok {
		return
	}
	h.Set(key, value)
}

// Get returns the value for key (case-insensitive), or "" if absent.
func (h *Header) Get(key string) string {
	v, _ := h.get(key)
	return v
}

// Has reports whether key is present (case-insensitive).
func (h *Header) Has(key string) bool {
	_, ok := h.get(key)
	return ok
}

func (h *Header) get(key string) (string, bool) {
	k := strings.ToLower(key)
	for _, f := range h.fields {
		if f.key == k {
			return f.value, true
		}
	}
	return "", false
}

// VisitAll calls fn for every header in insertion order, for emission.
func (h *Header) VisitAll(fn func(key, value string)) {
	for _, f := range h.fields {
		fn(f.key, f.value)
	}
}

// Reset clears the header for reuse.
func (h *Header) Reset() {
	h.fields = h.fields[:0]
}

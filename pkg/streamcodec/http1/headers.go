package http1

// maxInlineHeaders bounds how many headers HeaderList stores without
// falling back to heap allocation, matching
// shockwave/pkg/shockwave/http11/constants.go's MaxHeaders.
const maxInlineHeaders = 32

type headerEntry struct {
	name  string
	value string
}

// HeaderList stores the headers of a single decoded message in input
// order. Grounded on shockwave/pkg/shockwave/http11/header.go's Header:
// the same inline-array-plus-overflow zero-allocation idiom for the common
// case, generalized here to preserve insertion order in the overflow case
// too: the teacher's overflow is a map and silently loses order past 32
// headers, but header output order must equal input order regardless of
// count, so overflow here is an ordered slice instead of a map.
type HeaderList struct {
	inline  [maxInlineHeaders]headerEntry
	count   int
	overflow []headerEntry
}

// Add appends a header, preserving input order.
func (h *HeaderList) Add(name, value string) {
	if h.count < maxInlineHeaders {
		h.inline[h.count] = headerEntry{name, value}
		h.count++
		return
	}
	h.overflow = append(h.overflow, headerEntry{name, value})
}

// AppendToLast concatenates s onto the most recently added header's value,
// used for obs-fold header continuation lines (RFC 7230 §3.2.4).
func (h *HeaderList) AppendToLast(s string) {
	if n := len(h.overflow); n > 0 {
		h.overflow[n-1].value += s
		return
	}
	if h.count > 0 {
		h.inline[h.count-1].value += s
	}
}

// Get returns the first value for name (case-insensitive), and whether it
// was found.
func (h *HeaderList) Get(name string) (string, bool) {
	for i := 0; i < h.count; i++ {
		if equalFold(h.inline[i].name, name) {
			return h.inline[i].value, true
		}
	}
	for _, e := range h.overflow {
		if equalFold(e.name, name) {
			return e.value, true
		}
	}
	return "", false
}

// Count returns the number of Get(name) matches (case-insensitive).
func (h *HeaderList) Count(name string) int {
	n := 0
	for i := 0; i < h.count; i++ {
		if equalFold(h.inline[i].name, name) {
			n++
		}
	}
	for _, e := range h.overflow {
		if equalFold(e.name, name) {
			n++
		}
	}
	return n
}

// Len returns the total number of headers.
func (h *HeaderList) Len() int {
	return h.count + len(h.overflow)
}

// Reset clears all headers for reuse at a message boundary.
func (h *HeaderList) Reset() {
	h.count = 0
	h.overflow = h.overflow[:0]
}

// VisitAll calls visitor for each header in input order.
func (h *HeaderList) VisitAll(visitor func(name, value string)) {
	for i := 0; i < h.count; i++ {
		visitor(h.inline[i].name, h.inline[i].value)
	}
	for _, e := range h.overflow {
		visitor(e.name, e.value)
	}
}

package hpack

// HPACK encoder, RFC 7541 §4-§6.
//
// Grounded on shockwave/pkg/shockwave/http2/hpack.go's Encoder (NewEncoder,
// Encode, encodeHeaderField, encodeIndexed, encodeLiteralIndexedName,
// encodeLiteralNewName) for the overall shape of a stateful encoder holding
// a dynamic table and a method per representation; the encoder here adds
// a header-list-size preflight, a sensitivity predicate, and a per-header
// policy table, none of which the teacher's Encode implements.

import "math"

// RFC 7541 doesn't name explicit bounds on the table size; these follow the
// HTTP/2 SETTINGS_HEADER_TABLE_SIZE range as used by the teacher's
// http2/config.go validation pattern.
const (
	minHeaderTableSize = 0
	maxHeaderTableSize = math.MaxUint32

	defaultMaxHeaderTableSize = 4096
	defaultMaxHeaderListSize  = math.MaxUint32
)

// HeaderField is a single name/value pair to encode.
type HeaderField struct {
	Name  string
	Value string
}

// size is RFC 7541 §4.1's per-entry accounting size.
func (h HeaderField) size() int {
	return entrySize(h.Name, h.Value)
}

// SensitivityFunc classifies a header as one that must never be inserted
// into any dynamic table, by any intermediary, for confidentiality.
type SensitivityFunc func(name, value string) bool

// Encoder is a single HPACK encoding context: a dynamic table plus the
// caller-configured size bounds. An Encoder is not safe for concurrent use,
// matching the teacher's single-threaded Encoder contract.
type Encoder struct {
	table *dynamicTable

	maxHeaderTableSize      int
	maxHeaderListSize       int
	ignoreMaxHeaderListSize bool
}

// NewEncoder constructs an Encoder with RFC 7541 default table and list
// size bounds.
func NewEncoder() *Encoder {
	return &Encoder{
		table:              newDynamicTable(defaultMaxHeaderTableSize),
		maxHeaderTableSize: defaultMaxHeaderTableSize,
		maxHeaderListSize:  defaultMaxHeaderListSize,
	}
}

// SetIgnoreMaxHeaderListSize controls whether encodeHeaders enforces the
// header-list-size preflight check at all.
func (e *Encoder) SetIgnoreMaxHeaderListSize(ignore bool) {
	e.ignoreMaxHeaderListSize = ignore
}

// SetMaxHeaderListSize validates and stores newMax. It has no wire effect;
// SETTINGS_MAX_HEADER_LIST_SIZE is advisory and is never emitted onto the
// HPACK byte stream.
func (e *Encoder) SetMaxHeaderListSize(newMax int) error {
	if newMax < 0 {
		return ErrConfiguration
	}
	e.maxHeaderListSize = newMax
	return nil
}

// SetMaxHeaderTableSize validates newMax, updates the dynamic table's size
// bound (evicting as needed), and appends a dynamic-table-size-update
// directive to out. If newMax equals the current bound, this is a no-op
// that appends nothing.
func (e *Encoder) SetMaxHeaderTableSize(out []byte, newMax int) ([]byte, error) {
	if newMax < minHeaderTableSize || newMax > maxHeaderTableSize {
		return out, ErrConfiguration
	}
	if newMax == e.maxHeaderTableSize {
		return out, nil
	}

	e.maxHeaderTableSize = newMax
	e.table.SetMaxSize(newMax)

	out = appendInteger(out, uint64(newMax), 5, 0x20)
	return out, nil
}

// encodeHeaders encodes headers in input order into out. If
// ignoreMaxHeaderListSize is not set, the total size of headers is checked
// against maxHeaderListSize first; on overflow, ErrHeaderListSizeExceeded
// is returned (wrapped in a ProtocolError naming streamID), out is
// returned unchanged, and the dynamic table is untouched: no header is
// encoded and no partial output is produced.
func (e *Encoder) encodeHeaders(streamID uint32, out []byte, headers []HeaderField, sensitivity SensitivityFunc) ([]byte, error) {
	if !e.ignoreMaxHeaderListSize {
		total := 0
		for _, h := range headers {
			total += h.size()
		}
		if total > e.maxHeaderListSize {
			return out, &ProtocolError{StreamID: streamID, Err: ErrHeaderListSizeExceeded}
		}
	}

	for _, h := range headers {
		sensitive := sensitivity != nil && sensitivity(h.Name, h.Value)
		out = e.encodeHeaderField(out, h, sensitive)
	}
	return out, nil
}

// EncodeHeaders is the exported entry point for encodeHeaders.
func (e *Encoder) EncodeHeaders(streamID uint32, out []byte, headers []HeaderField, sensitivity SensitivityFunc) ([]byte, error) {
	return e.encodeHeaders(streamID, out, headers, sensitivity)
}

// encodeHeaderField applies the per-header encoding policy (sensitive
// literals never indexed, oversized or table-disabled fields literal, the
// rest indexed with incremental indexing when not already present) and
// appends the chosen representation to out, mutating the dynamic table
// only for the incremental-indexing branch.
func (e *Encoder) encodeHeaderField(out []byte, h HeaderField, sensitive bool) []byte {
	switch {
	case sensitive:
		return e.encodeLiteral(out, h, 0x10, 4, false)

	case e.maxHeaderTableSize == 0:
		if idx := findStaticNameValue(h.Name, h.Value); idx != -1 {
			return appendInteger(out, uint64(idx), 7, 0x80)
		}
		return e.encodeLiteral(out, h, 0x00, 4, false)

	case h.size() > e.maxHeaderTableSize:
		return e.encodeLiteral(out, h, 0x00, 4, false)
	}

	if idx := e.table.FindNameValue(h.Name, h.Value); idx != 0 {
		return appendInteger(out, uint64(idx+staticTableSize), 7, 0x80)
	}
	if idx := findStaticNameValue(h.Name, h.Value); idx != -1 {
		return appendInteger(out, uint64(idx), 7, 0x80)
	}

	return e.encodeLiteral(out, h, 0x40, 6, true)
}

// encodeLiteral appends a literal representation with the given
// representation mask and prefix width, using nameIndex resolution for the
// name field. When insert is true, h is also added to the dynamic table
// (the incremental-indexing branch).
func (e *Encoder) encodeLiteral(out []byte, h HeaderField, mask byte, prefixBits uint, insert bool) []byte {
	nameIdx := e.nameIndex(h.Name)

	if nameIdx == -1 {
		out = appendInteger(out, 0, prefixBits, mask)
		out = appendString(out, h.Name)
	} else {
		out = appendInteger(out, uint64(nameIdx), prefixBits, mask)
	}
	out = appendString(out, h.Value)

	if insert {
		e.table.Add(h.Name, h.Value)
	}
	return out
}

// nameIndex resolves a header name to a combined HPACK index: the static
// table is tried first, then the dynamic table offset by the static
// table's length, else -1.
func (e *Encoder) nameIndex(name string) int {
	if idx := findStaticName(name); idx != -1 {
		return idx
	}
	if idx := e.table.FindName(name); idx != 0 {
		return idx + staticTableSize
	}
	return -1
}

// appendString appends a string literal: a Huffman flag bit, a 7-bit
// prefix length, and the bytes, choosing whichever of raw or
// Huffman-encoded representation is strictly shorter (ties go to raw).
func appendString(out []byte, s string) []byte {
	raw := []byte(s)
	huffLen := huffmanEncodedLength(raw)

	if huffLen < len(raw) {
		out = appendInteger(out, uint64(huffLen), 7, 0x80)
		return appendHuffman(out, raw)
	}

	out = appendInteger(out, uint64(len(raw)), 7, 0x00)
	return append(out, raw...)
}

package hpack

import "testing"

func notSensitive(name, value string) bool { return false }

// TestEncodeHeadersStaticTableHit matches spec's scenario 1: encoding
// (:method, GET) with a non-sensitive predicate and the default table
// produces a single indexed byte and leaves the dynamic table untouched.
func TestEncodeHeadersStaticTableHit(t *testing.T) {
	e := NewEncoder()
	out, err := e.EncodeHeaders(1, nil, []HeaderField{{Name: ":method", Value: "GET"}}, notSensitive)
	if err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if len(out) != 1 || out[0] != 0x82 {
		t.Fatalf("out = %#v, want [0x82]", out)
	}
	if e.table.Len() != 0 {
		t.Fatalf("dynamic table Len() = %d, want 0", e.table.Len())
	}
}

// TestEncodeHeadersNewHeaderIncrementalIndexing matches spec's scenario 2.
func TestEncodeHeadersNewHeaderIncrementalIndexing(t *testing.T) {
	e := NewEncoder()
	out, err := e.EncodeHeaders(1, nil, []HeaderField{{Name: "custom-key", Value: "custom-value"}}, notSensitive)
	if err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if len(out) == 0 || out[0]&0xc0 != 0x40 {
		t.Fatalf("out[0] = %#x, want incremental-indexing representation (01xxxxxx)", out[0])
	}
	if e.table.Len() != 1 {
		t.Fatalf("dynamic table Len() = %d, want 1", e.table.Len())
	}
	if idx := e.table.FindNameValue("custom-key", "custom-value"); idx != 1 {
		t.Fatalf("FindNameValue = %d, want 1", idx)
	}
}

// TestEncodeHeadersLiteralSizeAccounting matches spec's scenario 2's size
// arithmetic: size() = len(name) + len(value) + 32.
func TestEncodeHeadersLiteralSizeAccounting(t *testing.T) {
	e := NewEncoder()
	if _, err := e.EncodeHeaders(1, nil, []HeaderField{{Name: "custom-key", Value: "custom-header"}}, notSensitive); err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if e.table.Size() != 55 {
		t.Fatalf("table.Size() = %d, want 55 (10+13+32)", e.table.Size())
	}
}

// TestEncodeHeadersSensitive matches spec's scenario 3.
func TestEncodeHeadersSensitive(t *testing.T) {
	e := NewEncoder()
	sensitive := func(name, value string) bool { return true }

	out, err := e.EncodeHeaders(1, nil, []HeaderField{{Name: "password", Value: "q1w2e3"}}, sensitive)
	if err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if len(out) == 0 || out[0]&0xf0 != 0x10 {
		t.Fatalf("out[0] = %#x, want never-indexed representation (0001xxxx)", out[0])
	}
	if e.table.Len() != 0 {
		t.Fatalf("dynamic table Len() = %d, want 0 (sensitive headers never indexed)", e.table.Len())
	}
}

// TestSetMaxHeaderTableSizeEmitsUpdateAndEvicts matches spec's scenario 4.
func TestSetMaxHeaderTableSizeEmitsUpdateAndEvicts(t *testing.T) {
	e := NewEncoder()
	e.table.Add("header-name-a", "a reasonably sized header value")
	e.table.Add("header-name-b", "another header value")
	e.table.Add("header-name-c", "yet another value")
	before := e.table.Size()
	if before == 0 {
		t.Fatalf("expected nonzero dynamic table size before resize")
	}

	out, err := e.SetMaxHeaderTableSize(nil, 100)
	if err != nil {
		t.Fatalf("SetMaxHeaderTableSize: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected a size-update directive to be emitted")
	}
	if e.table.Size() > 100 {
		t.Fatalf("table size %d exceeds new max 100", e.table.Size())
	}
	if e.table.MaxSize() != 100 {
		t.Fatalf("MaxSize() = %d, want 100", e.table.MaxSize())
	}
}

func TestSetMaxHeaderTableSizeRejectsOutOfRange(t *testing.T) {
	e := NewEncoder()
	if _, err := e.SetMaxHeaderTableSize(nil, -1); err == nil {
		t.Fatalf("expected error for negative table size")
	}
}

func TestSetMaxHeaderTableSizeNoopWhenUnchanged(t *testing.T) {
	e := NewEncoder()
	out, err := e.SetMaxHeaderTableSize(nil, defaultMaxHeaderTableSize)
	if err != nil {
		t.Fatalf("SetMaxHeaderTableSize: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no output when size unchanged, got %#v", out)
	}
}

// TestEncodeHeadersOversizeListNoPartialMutation matches spec's "no partial
// mutation on oversize" invariant: an oversize header list produces no
// output and leaves the dynamic table untouched.
func TestEncodeHeadersOversizeListNoPartialMutation(t *testing.T) {
	e := NewEncoder()
	if err := e.SetMaxHeaderListSize(10); err != nil {
		t.Fatalf("SetMaxHeaderListSize: %v", err)
	}

	headers := []HeaderField{
		{Name: "custom-key", Value: "custom-value"},
		{Name: "another-key", Value: "another-value"},
	}
	out, err := e.EncodeHeaders(7, nil, headers, notSensitive)
	if err == nil {
		t.Fatalf("expected ErrHeaderListSizeExceeded")
	}
	if len(out) != 0 {
		t.Fatalf("out = %#v, want empty on oversize failure", out)
	}
	if e.table.Len() != 0 {
		t.Fatalf("dynamic table Len() = %d, want 0 after oversize failure", e.table.Len())
	}

	protoErr, ok := err.(*ProtocolError)
	if !ok {
		t.Fatalf("err is %T, want *ProtocolError", err)
	}
	if protoErr.StreamID != 7 {
		t.Fatalf("StreamID = %d, want 7", protoErr.StreamID)
	}
}

func TestEncodeHeadersMaxTableSizeZeroUsesStaticOrLiteral(t *testing.T) {
	e := NewEncoder()
	if _, err := e.SetMaxHeaderTableSize(nil, 0); err != nil {
		t.Fatalf("SetMaxHeaderTableSize: %v", err)
	}

	out, err := e.EncodeHeaders(1, nil, []HeaderField{{Name: ":method", Value: "GET"}}, notSensitive)
	if err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if len(out) != 1 || out[0] != 0x82 {
		t.Fatalf("out = %#v, want [0x82] (static hit even with table size 0)", out)
	}

	out, err = e.EncodeHeaders(1, nil, []HeaderField{{Name: "custom-key", Value: "custom-value"}}, notSensitive)
	if err != nil {
		t.Fatalf("EncodeHeaders: %v", err)
	}
	if out[0]&0xf0 != 0x00 {
		t.Fatalf("out[0] = %#x, want not-indexed literal representation (0000xxxx)", out[0])
	}
	if e.table.Len() != 0 {
		t.Fatalf("dynamic table Len() = %d, want 0 (maxTableSize == 0 never mutates)", e.table.Len())
	}
}

func TestNameIndexResolution(t *testing.T) {
	e := NewEncoder()
	if idx := e.nameIndex(":method"); idx != 2 {
		t.Fatalf("nameIndex(:method) = %d, want 2 (static)", idx)
	}

	e.table.Add("x-custom", "v1")
	if idx := e.nameIndex("x-custom"); idx != staticTableSize+1 {
		t.Fatalf("nameIndex(x-custom) = %d, want %d", idx, staticTableSize+1)
	}

	if idx := e.nameIndex("nonexistent-header"); idx != -1 {
		t.Fatalf("nameIndex(nonexistent-header) = %d, want -1", idx)
	}
}

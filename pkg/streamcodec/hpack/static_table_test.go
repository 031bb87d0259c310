package hpack

import "testing"

func TestStaticTableSizeIs61(t *testing.T) {
	if staticTableSize != 61 {
		t.Fatalf("staticTableSize = %d, want 61", staticTableSize)
	}
	if staticTable[61] == (staticEntry{}) {
		t.Fatalf("staticTable[61] is empty, table is short")
	}
}

func TestFindStaticNameValueExactMatch(t *testing.T) {
	idx := findStaticNameValue(":method", "GET")
	if idx != 2 {
		t.Fatalf("findStaticNameValue(:method, GET) = %d, want 2", idx)
	}

	idx = findStaticNameValue(":method", "POST")
	if idx != 3 {
		t.Fatalf("findStaticNameValue(:method, POST) = %d, want 3", idx)
	}
}

func TestFindStaticNameValueMiss(t *testing.T) {
	if idx := findStaticNameValue(":method", "PATCH"); idx != -1 {
		t.Fatalf("findStaticNameValue(:method, PATCH) = %d, want -1", idx)
	}
	if idx := findStaticNameValue("x-custom", "v"); idx != -1 {
		t.Fatalf("findStaticNameValue(x-custom, v) = %d, want -1", idx)
	}
}

func TestFindStaticNameReturnsLowestIndex(t *testing.T) {
	idx := findStaticName(":method")
	if idx != 2 {
		t.Fatalf("findStaticName(:method) = %d, want 2 (lowest of 2,3)", idx)
	}

	idx = findStaticName("content-type")
	if idx != 31 {
		t.Fatalf("findStaticName(content-type) = %d, want 31", idx)
	}
}

func TestFindStaticNameMiss(t *testing.T) {
	if idx := findStaticName("x-custom-header"); idx != -1 {
		t.Fatalf("findStaticName(x-custom-header) = %d, want -1", idx)
	}
}

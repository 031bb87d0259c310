package hpack

import "testing"

func TestDynamicTableAddAndIndex(t *testing.T) {
	tbl := newDynamicTable(4096)

	tbl.Add("custom-key", "custom-value")
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	if idx := tbl.FindNameValue("custom-key", "custom-value"); idx != 1 {
		t.Fatalf("FindNameValue = %d, want 1", idx)
	}

	tbl.Add("custom-key2", "custom-value2")
	if idx := tbl.FindNameValue("custom-key2", "custom-value2"); idx != 1 {
		t.Fatalf("newest entry index = %d, want 1", idx)
	}
	if idx := tbl.FindNameValue("custom-key", "custom-value"); idx != 2 {
		t.Fatalf("older entry index = %d, want 2", idx)
	}
}

func TestDynamicTableSizeAccounting(t *testing.T) {
	tbl := newDynamicTable(4096)
	tbl.Add("custom-key", "custom-value")

	want := entrySize("custom-key", "custom-value")
	if tbl.Size() != want {
		t.Fatalf("Size() = %d, want %d", tbl.Size(), want)
	}
}

func TestDynamicTableEvictsOldestOnOverflow(t *testing.T) {
	tbl := newDynamicTable(0)
	tbl.SetMaxSize(entrySize("a", "1") + entrySize("b", "2"))

	tbl.Add("a", "1")
	tbl.Add("b", "2")
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	tbl.Add("c", "3")
	if tbl.Len() != 2 {
		t.Fatalf("Len() after eviction = %d, want 2", tbl.Len())
	}
	if idx := tbl.FindNameValue("a", "1"); idx != 0 {
		t.Fatalf("evicted entry still found at index %d", idx)
	}
	if idx := tbl.FindNameValue("c", "3"); idx != 1 {
		t.Fatalf("FindNameValue(c,3) = %d, want 1", idx)
	}
}

func TestDynamicTableEntryLargerThanMaxSizeNotStored(t *testing.T) {
	tbl := newDynamicTable(10)
	tbl.Add("this-name-is", "definitely-too-long-to-fit")

	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tbl.Len())
	}
	if tbl.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", tbl.Size())
	}
}

func TestDynamicTableSetMaxSizeShrinksAndEvicts(t *testing.T) {
	tbl := newDynamicTable(4096)
	tbl.Add("a", "1")
	tbl.Add("b", "2")
	tbl.Add("c", "3")

	total := tbl.Size()
	if total == 0 {
		t.Fatalf("expected nonzero size before shrink")
	}

	tbl.SetMaxSize(entrySize("c", "3"))
	if tbl.Size() > tbl.MaxSize() {
		t.Fatalf("Size() = %d exceeds MaxSize() = %d after shrink", tbl.Size(), tbl.MaxSize())
	}
	if idx := tbl.FindNameValue("c", "3"); idx == 0 {
		t.Fatalf("newest entry was evicted, want it retained")
	}
}

func TestDynamicTableFindNamePrefersNewest(t *testing.T) {
	tbl := newDynamicTable(4096)
	tbl.Add("x-custom", "v1")
	tbl.Add("x-custom", "v2")

	if idx := tbl.FindName("x-custom"); idx != 1 {
		t.Fatalf("FindName = %d, want 1 (newest)", idx)
	}
}

func TestDynamicTableMissReturnsZero(t *testing.T) {
	tbl := newDynamicTable(4096)
	if idx := tbl.FindName("missing"); idx != 0 {
		t.Fatalf("FindName(missing) = %d, want 0", idx)
	}
	if idx := tbl.FindNameValue("missing", "v"); idx != 0 {
		t.Fatalf("FindNameValue(missing, v) = %d, want 0", idx)
	}
}

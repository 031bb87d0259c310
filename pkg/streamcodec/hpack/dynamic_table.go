package hpack

// Dynamic table, RFC 7541 §2.3.2 and §4. Entries are added at the front and
// evicted from the back once the table's total size exceeds maxSize; each
// entry's size is len(name)+len(value)+32 per RFC 7541 §4.1.
//
// The teacher's shockwave/pkg/shockwave/http2/hpack_dynamic.go dynamicTable
// is a circular buffer with an O(n) linear-scan Find. This table instead
// needs O(1) amortized lookup and O(1) index derivation, so it uses a
// doubly-linked list (insertion/eviction order) plus a chained hash
// bucket index keyed by name and by name+value, instead of the teacher's
// array. The naming and error idiom (entrySize, Add/Find/SetMaxSize,
// evictOldest) are kept from the teacher; the storage is not.

// dynamicEntrySize is the per-entry overhead RFC 7541 §4.1 adds on top of
// the raw name/value bytes, accounting for HPACK implementation overhead.
const dynamicEntrySize = 32

func entrySize(name, value string) int {
	return len(name) + len(value) + dynamicEntrySize
}

// dynamicNode is one doubly-linked-list node. seq is a monotonically
// increasing sequence number assigned at insertion; the dynamic table's
// 1-based HPACK index of a node is always (newest.seq - node.seq + 1), so
// index derivation never requires walking the list.
type dynamicNode struct {
	name, value string
	seq         uint64
	prev, next  *dynamicNode // prev = newer, next = older
}

// dynamicTable implements RFC 7541's dynamic table with FIFO eviction.
// newest/oldest form a doubly-linked list in insertion order; nameIndex and
// nameValueIndex are hash buckets (chained via a slice per key) mapping a
// name, or a name+value pair, to the most-recently-inserted matching node,
// so Find is O(1) amortized instead of the teacher's O(n) scan.
type dynamicTable struct {
	newest, oldest *dynamicNode
	size           int
	maxSize        int
	nextSeq        uint64

	nameIndex      map[string][]*dynamicNode
	nameValueIndex map[string][]*dynamicNode
}

func newDynamicTable(maxSize int) *dynamicTable {
	return &dynamicTable{
		maxSize:        maxSize,
		nameIndex:      make(map[string][]*dynamicNode),
		nameValueIndex: make(map[string][]*dynamicNode),
	}
}

// Len returns the number of entries currently in the table.
func (t *dynamicTable) Len() int {
	n := 0
	for node := t.newest; node != nil; node = node.next {
		n++
	}
	return n
}

// Size returns the table's current size per RFC 7541 §4.1.
func (t *dynamicTable) Size() int { return t.size }

// MaxSize returns the table's configured size bound.
func (t *dynamicTable) MaxSize() int { return t.maxSize }

// SetMaxSize changes the table's size bound, evicting entries as needed.
// This backs both SETTINGS_HEADER_TABLE_SIZE application and the HPACK
// dynamic-table-size-update directive (RFC 7541 §6.3).
func (t *dynamicTable) SetMaxSize(maxSize int) {
	t.maxSize = maxSize
	t.evictToFit()
}

// Add inserts a new entry at the front of the table (the most recently
// added entry, HPACK index 1), evicting from the back until the table fits
// within maxSize. If the new entry alone is larger than maxSize, the table
// ends up empty and the entry is not stored, per RFC 7541 §4.4.
func (t *dynamicTable) Add(name, value string) {
	sz := entrySize(name, value)

	if sz > t.maxSize {
		t.evictAll()
		return
	}

	node := &dynamicNode{name: name, value: value, seq: t.nextSeq}
	t.nextSeq++

	node.next = t.newest
	if t.newest != nil {
		t.newest.prev = node
	}
	t.newest = node
	if t.oldest == nil {
		t.oldest = node
	}
	t.size += sz

	t.nameIndex[name] = append(t.nameIndex[name], node)
	key := name + "\x00" + value
	t.nameValueIndex[key] = append(t.nameValueIndex[key], node)

	t.evictToFit()
}

func (t *dynamicTable) evictToFit() {
	for t.size > t.maxSize && t.oldest != nil {
		t.evictOldest()
	}
}

func (t *dynamicTable) evictAll() {
	for t.oldest != nil {
		t.evictOldest()
	}
}

// evictOldest removes the least-recently-added entry and unlinks it from
// both hash buckets.
func (t *dynamicTable) evictOldest() {
	node := t.oldest
	if node == nil {
		return
	}

	t.oldest = node.prev
	if t.oldest != nil {
		t.oldest.next = nil
	} else {
		t.newest = nil
	}
	t.size -= entrySize(node.name, node.value)

	t.nameIndex[node.name] = removeNode(t.nameIndex[node.name], node)
	key := node.name + "\x00" + node.value
	t.nameValueIndex[key] = removeNode(t.nameValueIndex[key], node)
}

func removeNode(bucket []*dynamicNode, target *dynamicNode) []*dynamicNode {
	for i, n := range bucket {
		if n == target {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		return nil
	}
	return bucket
}

// index returns node's current 1-based HPACK dynamic-table index, derived
// from sequence numbers in O(1) rather than a list walk.
func (t *dynamicTable) index(node *dynamicNode) int {
	return int(t.newest.seq-node.seq) + 1
}

// FindNameValue returns the dynamic-table index (1-based, relative to this
// table; callers add staticTableSize to get an HPACK combined index) of the
// most recently inserted entry with an exact (name, value) match, or 0.
func (t *dynamicTable) FindNameValue(name, value string) int {
	bucket := t.nameValueIndex[name+"\x00"+value]
	if len(bucket) == 0 {
		return 0
	}
	return t.index(bucket[len(bucket)-1])
}

// FindName returns the dynamic-table index of the most recently inserted
// entry with a matching name, or 0.
func (t *dynamicTable) FindName(name string) int {
	bucket := t.nameIndex[name]
	if len(bucket) == 0 {
		return 0
	}
	return t.index(bucket[len(bucket)-1])
}

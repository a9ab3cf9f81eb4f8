package o5m

// stringTable is the bounded dictionary o5m uses to avoid repeating tag
// keys/values and user names verbatim. Every string or string-pair written
// is inserted at the front; once the table holds StringTableCapacity
// entries the oldest (the back) is evicted to make room. A lookup never
// promotes an entry, so repeated references to the same string still age
// toward eviction.
type stringTable struct {
	entries []string
}

func newStringTable() *stringTable {
	return &stringTable{entries: make([]string, 0, StringTableCapacity)}
}

// insert adds s to the front of the table, evicting the oldest entry if
// the table is full. Strings longer than MaxLiteralLen are never stored,
// mirroring the wire format's literal-cap rule: such strings are always
// written out in full and never referenced.
func (t *stringTable) insert(s string) {
	if len(s) > MaxLiteralLen {
		return
	}

	if len(t.entries) == cap(t.entries) {
		t.entries = t.entries[:len(t.entries)-1]
	}
	t.entries = append(t.entries, "")
	copy(t.entries[1:], t.entries)
	t.entries[0] = s
}

// lookup returns the string stored at the given 1-based back-reference: 1
// is the most recently inserted entry, 2 the one before it, and so on.
func (t *stringTable) lookup(ref int) (string, bool) {
	idx := ref - 1
	if idx < 0 || idx >= len(t.entries) {
		return "", false
	}
	return t.entries[idx], true
}

// referenceOf returns the 1-based back-reference position of s, or 0 if s
// is not currently in the table.
func (t *stringTable) referenceOf(s string) int {
	for i, entry := range t.entries {
		if entry == s {
			return i + 1
		}
	}
	return 0
}

// size reports the number of entries currently held, used to format
// dangling-reference error messages.
func (t *stringTable) size() int {
	return len(t.entries)
}

// reset empties the table. Triggered by a dataset reset (0xFF) and at the
// start of a stream.
func (t *stringTable) reset() {
	t.entries = t.entries[:0]
}

package o5m

import (
	"strings"
	"testing"

	"github.com/hauke96/vadeenosm/internal/assert"
)

func TestStringTable_insertAndLookup(t *testing.T) {
	st := newStringTable()
	st.insert("a")
	st.insert("b")

	// Most recently inserted is reference 1.
	got, ok := st.lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	got, ok = st.lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = st.lookup(3)
	assert.False(t, ok)
}

func TestStringTable_noLRUPromotionOnLookup(t *testing.T) {
	st := newStringTable()
	st.insert("a")
	st.insert("b")
	st.insert("c")

	// Looking up "c" (ref 1) must not change the order.
	_, _ = st.lookup(1)
	got, _ := st.lookup(3)
	assert.Equal(t, "a", got)
}

func TestStringTable_evictsOldestAtCapacity(t *testing.T) {
	st := &stringTable{entries: make([]string, 0, 2)}
	st.insert("a")
	st.insert("b")
	st.insert("c")

	assert.Equal(t, 2, st.size())
	got, ok := st.lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = st.lookup(3)
	assert.False(t, ok)
}

func TestStringTable_rejectsLiteralsOverMaxLen(t *testing.T) {
	st := newStringTable()
	long := strings.Repeat("x", MaxLiteralLen+1)
	st.insert(long)

	assert.Equal(t, 0, st.size())
}

func TestStringTable_reset(t *testing.T) {
	st := newStringTable()
	st.insert("a")
	st.reset()

	assert.Equal(t, 0, st.size())
	_, ok := st.lookup(1)
	assert.False(t, ok)
}

func TestStringTable_referenceOf(t *testing.T) {
	st := newStringTable()
	st.insert("a")
	st.insert("b")

	assert.Equal(t, 1, st.referenceOf("b"))
	assert.Equal(t, 2, st.referenceOf("a"))
	assert.Equal(t, 0, st.referenceOf("missing"))
}

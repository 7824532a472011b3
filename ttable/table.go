// Package ttable implements the search core's transposition cache: a
// fixed-capacity, direct-mapped table with depth-preferring
// replacement (spec.md §3, §4.2).
package ttable

import (
	"unsafe"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
)

// Kind classifies how a stored value relates to the window it was
// produced under.
type Kind uint8

const (
	Exact Kind = iota
	LowerBound
	UpperBound
)

// Entry is one transposition cache record. Depth is the remaining
// search depth at which it was produced; larger means more trustworthy.
// BestMove is recorded even for bound entries so move ordering can
// still be seeded from it.
type Entry struct {
	Kind     Kind
	Value    eval.Eval
	Depth    uint8
	BestMove dt.Move
}

type slot struct {
	hash  uint64
	entry Entry
	used  bool
}

// Table is a direct-mapped transposition cache. The zero value is not
// usable; construct with New or NewFromByteSize.
type Table struct {
	slots []slot
	mask  uint64
	count int
}

// New allocates a table with entries rounded up to the next power of
// two.
func New(entries int) *Table {
	n := 1
	for n < entries {
		n <<= 1
	}
	if n == 0 {
		n = 1
	}
	return &Table{slots: make([]slot, n), mask: uint64(n - 1)}
}

// NewFromByteSize allocates a table sized to fit roughly byteSize
// bytes of entries, rounded up to a power of two entry count.
func NewFromByteSize(byteSize int) *Table {
	entrySize := int(unsafe.Sizeof(Entry{})) + int(unsafe.Sizeof(uint64(0)))
	if entrySize <= 0 {
		entrySize = 1
	}
	return New(byteSize / entrySize)
}

// Get returns the entry for board's hash iff the slot's stored hash
// matches; hash collisions are silently ignored (no probing).
func (t *Table) Get(hash uint64) (Entry, bool) {
	s := &t.slots[hash&t.mask]
	if s.used && s.hash == hash {
		return s.entry, true
	}
	return Entry{}, false
}

// Set applies the replacement rule: an empty slot is always filled; an
// occupied slot is overwritten when the incoming hash matches (fresher
// information about the same position) or when the incoming entry's
// depth strictly exceeds the resident entry's depth.
func (t *Table) Set(hash uint64, entry Entry) {
	s := &t.slots[hash&t.mask]
	if !s.used {
		t.count++
		s.used = true
		s.hash = hash
		s.entry = entry
		return
	}
	if s.hash == hash || entry.Depth > s.entry.Depth {
		s.hash = hash
		s.entry = entry
	}
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.slots)
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	return t.count
}

// Clear empties the table without reallocating.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
	t.count = 0
}

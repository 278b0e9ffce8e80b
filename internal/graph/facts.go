package graph

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when no graph facts exist for an id.
var ErrRecordNotFound = errors.New("graph record not found")

// Facts resolves a standard record id to its canonical graph. category is
// the category the answer was asked under; records stored without one are
// decoded with it.
type Facts interface {
	Lookup(id string, category Category) (Record, error)
}

type factEntry struct {
	record Record
	err    error
	// untyped records keep their raw texts until a category is known.
	raw     RawRecord
	untyped bool
}

// MemoryFacts is an in-memory Facts store. Decoding errors are kept per
// record and returned on lookup so one bad record never blocks the others.
// Lookups are safe for concurrent use once all records are added.
type MemoryFacts struct {
	entries map[string]factEntry
	order   []string
}

// NewMemoryFacts creates an empty store.
func NewMemoryFacts() *MemoryFacts {
	return &MemoryFacts{entries: map[string]factEntry{}}
}

// Add decodes and stores a raw record. Later ids replace earlier ones.
func (m *MemoryFacts) Add(raw RawRecord) {
	if _, exists := m.entries[raw.ID]; !exists {
		m.order = append(m.order, raw.ID)
	}
	if raw.Category == "" {
		m.entries[raw.ID] = factEntry{raw: raw, untyped: true}
		return
	}
	record, err := NewRecord(raw)
	m.entries[raw.ID] = factEntry{record: record, err: err}
}

// Lookup returns the record for id, ErrRecordNotFound, or the stored
// *MalformedError.
func (m *MemoryFacts) Lookup(id string, category Category) (Record, error) {
	entry, ok := m.entries[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if entry.untyped {
		raw := entry.raw
		raw.Category = category
		return NewRecord(raw)
	}
	if entry.err != nil {
		return Record{}, entry.err
	}
	return entry.record, nil
}

// IDs returns stored ids in insertion order.
func (m *MemoryFacts) IDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of stored records.
func (m *MemoryFacts) Len() int {
	return len(m.order)
}

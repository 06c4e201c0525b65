// Package idset holds the sets of vendor and purpose identifiers decoded from GPP sections,
// together with the bit level encodings shared by every section format.
package idset

import (
	"encoding/json"
	"slices"
)

// IDSet is an immutable set of identifiers. The zero value is an empty set.
type IDSet struct {
	ids map[uint16]struct{}
}

// Of returns a set holding the given identifiers.
func Of(ids ...uint16) IDSet {
	var b Builder
	for _, id := range ids {
		b.Add(id)
	}
	return b.Build()
}

// Contains reports whether id is a member of the set.
func (s IDSet) Contains(id uint16) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether the set has no members.
func (s IDSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the members in ascending order.
func (s IDSet) IDs() []uint16 {
	ids := make([]uint16, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Equal reports whether both sets hold the same members.
func (s IDSet) Equal(other IDSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

// MarshalJSON renders the set as an ascending array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// Builder accumulates identifiers for a single IDSet.
type Builder struct {
	ids map[uint16]struct{}
}

// Add inserts id.
func (b *Builder) Add(id uint16) {
	if b.ids == nil {
		b.ids = make(map[uint16]struct{})
	}
	b.ids[id] = struct{}{}
}

// AddRange inserts every identifier of the inclusive interval [start, end].
// Nothing is inserted when start is greater than end.
func (b *Builder) AddRange(start, end uint16) {
	for id := int(start); id <= int(end); id++ {
		b.Add(uint16(id))
	}
}

// Build returns the accumulated set. The Builder must not be used afterwards.
func (b *Builder) Build() IDSet {
	s := IDSet{ids: b.ids}
	b.ids = nil
	return s
}

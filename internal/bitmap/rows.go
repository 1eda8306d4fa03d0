package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RowSet is a set of row positions backed by a 32-bit Roaring Bitmap.
type RowSet struct {
	rb *roaring.Bitmap
}

// NewRowSet creates a new empty row set.
func NewRowSet() *RowSet {
	return &RowSet{rb: roaring.New()}
}

// RowSetOf creates a row set holding the given rows.
func RowSetOf(rows ...uint32) *RowSet {
	return &RowSet{rb: roaring.BitmapOf(rows...)}
}

// Add adds a row to the set.
func (s *RowSet) Add(row uint32) {
	s.rb.Add(row)
}

// Remove removes a row from the set.
func (s *RowSet) Remove(row uint32) {
	s.rb.Remove(row)
}

// Contains checks if a row is in the set.
func (s *RowSet) Contains(row uint32) bool {
	return s.rb.Contains(row)
}

// IsEmpty returns true if the set is empty.
func (s *RowSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of rows in the set.
func (s *RowSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *RowSet) Clone() *RowSet {
	return &RowSet{rb: s.rb.Clone()}
}

// Rows returns the rows in ascending order.
func (s *RowSet) Rows() []int {
	out := make([]int, 0, s.rb.GetCardinality())
	for row := range s.Iterator() {
		out = append(out, int(row))
	}
	return out
}

// Iterator returns an iterator over the rows in ascending order.
func (s *RowSet) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// And computes the intersection of two sets in place.
func (s *RowSet) And(other *RowSet) {
	s.rb.And(other.rb)
}

// Or computes the union of two sets in place.
func (s *RowSet) Or(other *RowSet) {
	s.rb.Or(other.rb)
}

package geometry

import (
	"fmt"
	"slices"
)

// Column is an encoded geometry column: one kind for the whole column and one
// value per row.
type Column struct {
	kind   Kind
	values []Value
}

// NewColumn assembles a column from already encoded values. Every value must
// belong to kind's family and, for a singular kind, hold at most one part.
// Values are re-tagged with kind.
func NewColumn(kind Kind, values []Value) (*Column, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("new column: invalid kind %s", kind)
	}
	out := make([]Value, len(values))
	for i, v := range values {
		if v.kind != KindInvalid && v.kind.Element() != kind.Element() {
			return nil, malformed(i, "%s value in %s column", v.kind, kind)
		}
		if !kind.IsMulti() {
			if v.NumParts() > 1 {
				return nil, malformed(i, "%d parts in %s column", v.NumParts(), kind)
			}
			if kind == KindPoint && v.NumVertices() > 1 {
				return nil, malformed(i, "%d vertices in %s column", v.NumVertices(), kind)
			}
		}
		out[i] = v.withKind(kind)
	}
	return &Column{kind: kind, values: out}, nil
}

// Kind returns the column dtype.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.values) }

// At returns the value of row i.
func (c *Column) At(i int) Value { return c.values[i] }

// Values returns a copy of the row values.
func (c *Column) Values() []Value { return slices.Clone(c.values) }

// Select returns a column holding the given rows, in order. The kind is kept.
func (c *Column) Select(rows []int) *Column {
	values := make([]Value, len(rows))
	for i, r := range rows {
		values[i] = c.values[r]
	}
	return &Column{kind: c.kind, values: values}
}

// Decode expands the column into row-oriented outputs.
func (c *Column) Decode() []Output { return Decode(c) }

// Equal reports whether both columns have the same kind and values.
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.kind == o.kind && slices.EqualFunc(c.values, o.values, Value.Equal)
}

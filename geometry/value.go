package geometry

import (
	"math"
	"slices"
)

// Ring is an ordered vertex sequence.
type Ring [][2]float64

// Part is one connected sub-geometry. For polygon kinds the first ring is the
// outer ring and the rest are holes; other kinds hold exactly one ring.
type Part []Ring

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Value is the buffer representation of one row's geometry.
//
// coords holds interleaved x,y pairs. ringEnds[i] is the end offset (in floats)
// of ring i inside coords, partEnds[j] is the end index of part j inside
// ringEnds. Point kinds store their vertices as a single ring. An empty value
// has no coords, rings or parts.
//
// Values are immutable; accessors return copies.
type Value struct {
	kind     Kind
	coords   []float64
	ringEnds []int
	partEnds []int
}

// NewPoint returns a Point value.
func NewPoint(x, y float64) Value {
	return Value{kind: KindPoint, coords: []float64{x, y}, ringEnds: []int{2}, partEnds: []int{1}}
}

// NewValue builds a value from its buffer and structural metadata after checking
// that the structure is consistent with kind. The slices are copied.
func NewValue(kind Kind, coords []float64, ringEnds, partEnds []int) (Value, error) {
	if !kind.Valid() {
		return Value{}, malformed(-1, "invalid kind %s", kind)
	}
	if len(coords)%2 != 0 {
		return Value{}, malformed(-1, "odd coordinate count %d", len(coords))
	}
	for i, c := range coords {
		if math.IsNaN(c) {
			return Value{}, malformed(-1, "NaN at buffer offset %d", i)
		}
	}
	prev := 0
	for i, end := range ringEnds {
		if end < prev || end%2 != 0 || end > len(coords) {
			return Value{}, malformed(-1, "invalid ring end %d at ring %d", end, i)
		}
		prev = end
	}
	if prev != len(coords) {
		return Value{}, malformed(-1, "rings cover %d of %d coordinates", prev, len(coords))
	}
	prev = 0
	for i, end := range partEnds {
		if end < prev || end > len(ringEnds) {
			return Value{}, malformed(-1, "invalid part end %d at part %d", end, i)
		}
		prev = end
	}
	if prev != len(ringEnds) {
		return Value{}, malformed(-1, "parts cover %d of %d rings", prev, len(ringEnds))
	}

	switch kind {
	case KindPoint:
		if len(coords) > 2 {
			return Value{}, malformed(-1, "point with %d vertices", len(coords)/2)
		}
		fallthrough
	case KindMultiPoint:
		if len(ringEnds) > 1 || len(partEnds) > 1 {
			return Value{}, malformed(-1, "%s must hold a single ring", kind)
		}
	case KindLine, KindMultiLine:
		if kind == KindLine && len(partEnds) > 1 {
			return Value{}, malformed(-1, "line with %d parts", len(partEnds))
		}
		start := 0
		for i, end := range partEnds {
			if end-start != 1 {
				return Value{}, malformed(-1, "line part %d has %d rings", i, end-start)
			}
			start = end
		}
	case KindPolygon:
		if len(partEnds) > 1 {
			return Value{}, malformed(-1, "polygon with %d parts", len(partEnds))
		}
	}

	return Value{
		kind:     kind,
		coords:   cloneOrNil(coords),
		ringEnds: cloneOrNil(ringEnds),
		partEnds: cloneOrNil(partEnds),
	}, nil
}

// Kind returns the value's geometry kind.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value has no vertices.
func (v Value) IsEmpty() bool { return len(v.coords) == 0 }

// NumVertices returns the number of (x, y) pairs in the buffer.
func (v Value) NumVertices() int { return len(v.coords) / 2 }

// NumRings returns the number of rings across all parts.
func (v Value) NumRings() int { return len(v.ringEnds) }

// NumParts returns the number of parts.
func (v Value) NumParts() int { return len(v.partEnds) }

// BufferValues returns a copy of the flat coordinate buffer.
func (v Value) BufferValues() []float64 {
	return slices.Clone(v.coords)
}

// FlatValues returns the raw coordinate sequence. For a point this is its
// (x, y) pair; for every other kind it equals BufferValues.
func (v Value) FlatValues() []float64 {
	if v.kind == KindPoint && len(v.coords) >= 2 {
		return []float64{v.coords[0], v.coords[1]}
	}
	return v.BufferValues()
}

// RingEnds returns a copy of the ring end offsets (in floats).
func (v Value) RingEnds() []int { return slices.Clone(v.ringEnds) }

// PartEnds returns a copy of the part end indexes (into RingEnds).
func (v Value) PartEnds() []int { return slices.Clone(v.partEnds) }

// Parts re-segments the buffer into parts and rings.
func (v Value) Parts() []Part {
	if len(v.partEnds) == 0 {
		return nil
	}
	parts := make([]Part, len(v.partEnds))
	ringStart := 0
	for p, partEnd := range v.partEnds {
		part := make(Part, 0, partEnd-ringStart)
		for r := ringStart; r < partEnd; r++ {
			part = append(part, v.ring(r))
		}
		parts[p] = part
		ringStart = partEnd
	}
	return parts
}

func (v Value) ring(r int) Ring {
	start := 0
	if r > 0 {
		start = v.ringEnds[r-1]
	}
	end := v.ringEnds[r]
	ring := make(Ring, 0, (end-start)/2)
	for i := start; i < end; i += 2 {
		ring = append(ring, [2]float64{v.coords[i], v.coords[i+1]})
	}
	return ring
}

// Bounds returns the bounding box of all vertices. ok is false for an empty value.
func (v Value) Bounds() (bbox BBox, ok bool) {
	if len(v.coords) == 0 {
		return BBox{}, false
	}
	bbox = BBox{MinX: v.coords[0], MinY: v.coords[1], MaxX: v.coords[0], MaxY: v.coords[1]}
	for i := 2; i < len(v.coords); i += 2 {
		x, y := v.coords[i], v.coords[i+1]
		bbox.MinX = min(bbox.MinX, x)
		bbox.MinY = min(bbox.MinY, y)
		bbox.MaxX = max(bbox.MaxX, x)
		bbox.MaxY = max(bbox.MaxY, y)
	}
	return bbox, true
}

// Equal reports whether two values have the same kind, buffer and structure.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind &&
		slices.Equal(v.coords, o.coords) &&
		slices.Equal(v.ringEnds, o.ringEnds) &&
		slices.Equal(v.partEnds, o.partEnds)
}

// withKind re-tags the value; the column kind wins over the row's own kind.
func (v Value) withKind(k Kind) Value {
	v.kind = k
	return v
}

func cloneOrNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

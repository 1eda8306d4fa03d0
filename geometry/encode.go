package geometry

import (
	"fmt"
	"math"
)

// Encode turns row-oriented inputs into a buffer column. The element picks the
// kind family; the column kind escalates to Multi- when any row needs it.
// A failure on any row aborts the whole batch.
func Encode(element Element, inputs []Input) (*Column, error) {
	kind := element.Kind()
	if !kind.Valid() {
		return nil, fmt.Errorf("encode: invalid element %s", element)
	}
	return EncodeKind(kind, inputs)
}

// EncodeKind is Encode with a minimum column kind. A Multi- kind keeps the
// column Multi- even when every row has a single part; a singular kind still
// escalates when a row needs it.
func EncodeKind(kind Kind, inputs []Input) (*Column, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("encode: invalid kind %s", kind)
	}
	element := kind.Element()

	values := make([]Value, len(inputs))
	multi := kind.IsMulti()
	for row, in := range inputs {
		r, err := resolve(row, in)
		if err != nil {
			return nil, err
		}
		var v Value
		switch element {
		case ElementPoints:
			v, err = encodePoints(row, r)
		case ElementPath:
			v, err = encodePath(row, r)
		case ElementPolygons:
			v, err = encodePolygons(row, r)
		}
		if err != nil {
			return nil, err
		}
		if v.kind.IsMulti() {
			multi = true
		}
		values[row] = v
	}

	colKind := kind.Singular()
	if multi {
		colKind = colKind.Multi()
	}
	for i := range values {
		values[i] = values[i].withKind(colKind)
	}
	return &Column{kind: colKind, values: values}, nil
}

// EncodeRow encodes a single input with the given element.
func EncodeRow(element Element, in Input) (Value, error) {
	col, err := Encode(element, []Input{in})
	if err != nil {
		return Value{}, err
	}
	return col.At(0), nil
}

func encodePoints(row int, r resolved) (Value, error) {
	if r.holes != nil {
		return Value{}, malformed(row, "holes require polygon semantics")
	}
	coords := make([]float64, 0, 2*len(r.vertices))
	for _, p := range r.vertices {
		sep, err := isSeparator(row, p)
		if err != nil {
			return Value{}, err
		}
		if sep {
			continue
		}
		coords = append(coords, p[0], p[1])
	}
	switch len(coords) {
	case 0:
		return Value{kind: KindPoint}, nil
	case 2:
		return Value{kind: KindPoint, coords: coords, ringEnds: []int{2}, partEnds: []int{1}}, nil
	default:
		return Value{kind: KindMultiPoint, coords: coords, ringEnds: []int{len(coords)}, partEnds: []int{1}}, nil
	}
}

func encodePath(row int, r resolved) (Value, error) {
	if r.holes != nil {
		return Value{}, malformed(row, "holes require polygon semantics")
	}
	parts, err := splitParts(row, r.vertices)
	if err != nil {
		return Value{}, err
	}
	var b builder
	for _, part := range parts {
		b.addRing(part)
		b.endPart()
	}
	kind := KindLine
	if len(parts) > 1 {
		kind = KindMultiLine
	}
	return b.value(kind), nil
}

func encodePolygons(row int, r resolved) (Value, error) {
	parts, err := splitParts(row, r.vertices)
	if err != nil {
		return Value{}, err
	}
	if r.holes != nil && len(r.holes) != len(parts) {
		return Value{}, &ShapeMismatchError{Row: row, Parts: len(parts), HoleLists: len(r.holes)}
	}
	var b builder
	for i, outer := range parts {
		b.addRing(orient(outer, true))
		if r.holes != nil {
			for j, hole := range r.holes[i] {
				for _, p := range hole {
					if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
						return Value{}, malformed(row, "NaN in hole %d of part %d", j, i)
					}
				}
				if len(hole) == 0 {
					continue
				}
				b.addRing(orient(Ring(hole), false))
			}
		}
		b.endPart()
	}
	kind := KindPolygon
	if len(parts) > 1 {
		kind = KindMultiPolygon
	}
	return b.value(kind), nil
}

// builder accumulates rings and parts of one value.
type builder struct {
	coords   []float64
	ringEnds []int
	partEnds []int
}

func (b *builder) addRing(r Ring) {
	for _, p := range r {
		b.coords = append(b.coords, p[0], p[1])
	}
	b.ringEnds = append(b.ringEnds, len(b.coords))
}

func (b *builder) endPart() {
	b.partEnds = append(b.partEnds, len(b.ringEnds))
}

func (b *builder) value(kind Kind) Value {
	return Value{kind: kind, coords: b.coords, ringEnds: b.ringEnds, partEnds: b.partEnds}
}

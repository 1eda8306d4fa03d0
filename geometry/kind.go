package geometry

import (
	"fmt"
	"strings"
)

// Kind identifies the geometry dtype of a value or a column.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindPoint is a single (x, y) pair.
	KindPoint
	// KindMultiPoint is an ordered set of pairs without part structure.
	KindMultiPoint
	// KindLine is one connected polyline.
	KindLine
	// KindMultiLine is an ordered sequence of polylines.
	KindMultiLine
	// KindPolygon is one outer ring with optional holes.
	KindPolygon
	// KindMultiPolygon is an ordered sequence of polygons.
	KindMultiPolygon
)

// String returns the dtype name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindMultiPoint:
		return "MultiPoint"
	case KindLine:
		return "Line"
	case KindMultiLine:
		return "MultiLine"
	case KindPolygon:
		return "Polygon"
	case KindMultiPolygon:
		return "MultiPolygon"
	default:
		return fmt.Sprintf("Invalid(%d)", uint8(k))
	}
}

// ParseKind parses a dtype name as returned by Kind.String.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k := KindPoint; k <= KindMultiPolygon; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown geometry kind %q", s)
}

// Valid reports whether k is one of the six geometry kinds.
func (k Kind) Valid() bool {
	return k >= KindPoint && k <= KindMultiPolygon
}

// IsMulti reports whether k is a Multi- kind.
func (k Kind) IsMulti() bool {
	switch k {
	case KindMultiPoint, KindMultiLine, KindMultiPolygon:
		return true
	default:
		return false
	}
}

// Multi returns the Multi- counterpart of k. Multi- kinds return themselves.
func (k Kind) Multi() Kind {
	switch k {
	case KindPoint:
		return KindMultiPoint
	case KindLine:
		return KindMultiLine
	case KindPolygon:
		return KindMultiPolygon
	default:
		return k
	}
}

// Singular returns the single-part counterpart of k.
func (k Kind) Singular() Kind {
	switch k {
	case KindMultiPoint:
		return KindPoint
	case KindMultiLine:
		return KindLine
	case KindMultiPolygon:
		return KindPolygon
	default:
		return k
	}
}

// Element returns the element family k belongs to.
func (k Kind) Element() Element {
	switch k {
	case KindPoint, KindMultiPoint:
		return ElementPoints
	case KindLine, KindMultiLine:
		return ElementPath
	case KindPolygon, KindMultiPolygon:
		return ElementPolygons
	default:
		return ElementInvalid
	}
}

// Element is the semantics a caller requests for a column of inputs.
// It selects the kind family; the row data selects singular or Multi-.
type Element uint8

const (
	// ElementInvalid is the zero Element.
	ElementInvalid Element = iota
	// ElementPoints treats every vertex as a standalone point.
	ElementPoints
	// ElementPath treats vertices as connected polylines.
	ElementPath
	// ElementPolygons treats vertices as closed rings with optional holes.
	ElementPolygons
)

// String returns the element name.
func (e Element) String() string {
	switch e {
	case ElementPoints:
		return "Points"
	case ElementPath:
		return "Path"
	case ElementPolygons:
		return "Polygons"
	default:
		return fmt.Sprintf("Invalid(%d)", uint8(e))
	}
}

// ParseElement parses an element name as returned by Element.String.
func ParseElement(s string) (Element, error) {
	for e := ElementPoints; e <= ElementPolygons; e++ {
		if strings.EqualFold(s, e.String()) {
			return e, nil
		}
	}
	return ElementInvalid, fmt.Errorf("unknown element %q", s)
}

// Kind returns the singular kind of the element's family.
func (e Element) Kind() Kind {
	switch e {
	case ElementPoints:
		return KindPoint
	case ElementPath:
		return KindLine
	case ElementPolygons:
		return KindPolygon
	default:
		return KindInvalid
	}
}

package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGeometry is matched by every MalformedGeometryError.
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrShapeMismatch is matched by every ShapeMismatchError.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupportedGeometry is returned when a foreign geometry has no buffer kind
	// (e.g. a GeometryCollection).
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)

// MalformedGeometryError reports structurally invalid input such as x/y arrays of
// different lengths, holes without polygon semantics or a half-NaN coordinate pair.
//
// Row is the input row index, or -1 when the error is not tied to a row.
type MalformedGeometryError struct {
	Row    int
	Reason string
}

func (e *MalformedGeometryError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed geometry: %s", e.Reason)
	}
	return fmt.Sprintf("malformed geometry in row %d: %s", e.Row, e.Reason)
}

func (e *MalformedGeometryError) Unwrap() error { return ErrMalformedGeometry }

// ShapeMismatchError reports a polygon row whose hole lists do not line up with
// the parts produced by splitting its coordinates on the NaN separator.
type ShapeMismatchError struct {
	Row       int
	Parts     int
	HoleLists int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch in row %d: %d parts but %d hole lists", e.Row, e.Parts, e.HoleLists)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

func malformed(row int, format string, args ...any) error {
	return &MalformedGeometryError{Row: row, Reason: fmt.Sprintf(format, args...)}
}

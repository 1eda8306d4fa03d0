package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrData is matched by every DataError.
	ErrData = errors.New("data error")

	// ErrInvalidRow is returned for an out-of-range row position.
	ErrInvalidRow = errors.New("invalid row")

	// ErrInvalidColumn is returned for an out-of-range column position.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrColumnNotFound is returned when a named dimension does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDatatype is returned for an unknown storage datatype.
	ErrDatatype = errors.New("unknown datatype")
)

// DataError reports an operation whose meaning would be ambiguous over the
// dataset's geometry, such as grouping multi-geometry rows.
type DataError struct {
	Op     string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s: %s", e.Op, e.Reason)
}

func (e *DataError) Unwrap() error { return ErrData }

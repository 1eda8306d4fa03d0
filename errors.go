package geobuf

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geobuf/blobstore"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
	"github.com/hupe1980/geobuf/persistence"
)

var (
	// ErrMalformedGeometry is returned for structurally invalid rows.
	ErrMalformedGeometry = geometry.ErrMalformedGeometry

	// ErrShapeMismatch is returned when polygon hole lists do not match the parts.
	ErrShapeMismatch = geometry.ErrShapeMismatch

	// ErrData is returned for operations that are ambiguous over the geometry.
	ErrData = dataset.ErrData

	// ErrNotFound is returned when a persisted dataset does not exist.
	ErrNotFound = errors.New("dataset not found")

	// ErrCorrupt is returned when persisted data fails validation.
	ErrCorrupt = errors.New("corrupt dataset")
)

// ErrRow reports the input row that could not be encoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrRow struct {
	Row   int
	cause error
}

func (e *ErrRow) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.cause)
}

func (e *ErrRow) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var mg *geometry.MalformedGeometryError
	if errors.As(err, &mg) && mg.Row >= 0 {
		return &ErrRow{Row: mg.Row, cause: err}
	}
	var sm *geometry.ShapeMismatchError
	if errors.As(err, &sm) {
		return &ErrRow{Row: sm.Row, cause: err}
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if persistence.IsChecksumMismatch(err) ||
		errors.Is(err, persistence.ErrInvalidMagic) ||
		errors.Is(err, persistence.ErrInvalidVersion) ||
		errors.Is(err, persistence.ErrInvalidBlob) ||
		errors.Is(err, persistence.ErrInvalidManifest) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return err
}

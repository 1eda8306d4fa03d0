package dataset

import "fmt"

// Datatype names the storage representation of a dataset.
type Datatype string

const (
	// Spatial stores geometries in the buffer representation.
	Spatial Datatype = "spatial"
	// MultiTabular stores geometries as exploded row-oriented records.
	MultiTabular Datatype = "multitabular"
)

// ParseDatatype validates a datatype name.
func ParseDatatype(s string) (Datatype, error) {
	switch dt := Datatype(s); dt {
	case Spatial, MultiTabular:
		return dt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrDatatype, s)
	}
}

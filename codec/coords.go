package codec

import (
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"
)

// Coords is a coordinate array whose NaN part separators survive JSON: NaN is
// written as null and null is read back as NaN.
type Coords []float64

// MarshalJSON implements json.Marshaler.
func (c Coords) MarshalJSON() ([]byte, error) {
	cells := make([]*float64, len(c))
	for i := range c {
		switch f := c[i]; {
		case math.IsNaN(f):
		case math.IsInf(f, 0):
			return nil, fmt.Errorf("codec: infinite coordinate at index %d", i)
		default:
			cells[i] = &c[i]
		}
	}
	return gojson.Marshal(cells)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coords) UnmarshalJSON(data []byte) error {
	var cells []*float64
	if err := gojson.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("codec: invalid coordinates: %w", err)
	}
	if cells == nil {
		*c = nil
		return nil
	}
	out := make(Coords, len(cells))
	for i, p := range cells {
		if p == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *p
	}
	*c = out
	return nil
}

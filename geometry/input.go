package geometry

import "math"

// Input is one row of row-oriented geometry input. It is a closed variant:
// ArrayForm or DictForm.
type Input interface {
	isInput()
}

// ArrayForm is a plain sequence of (x, y) vertices. A (NaN, NaN) vertex separates parts.
type ArrayForm [][2]float64

func (ArrayForm) isInput() {}

// DictForm holds parallel x and y arrays plus optional polygon holes.
//
// Holes are listed per part, then per hole ring, then per vertex. A part
// without holes has an empty list.
type DictForm struct {
	X     []float64
	Y     []float64
	Holes [][][][2]float64
}

func (DictForm) isInput() {}

// resolved is an Input after the variant switch: vertices with sentinels still in place.
type resolved struct {
	vertices [][2]float64
	holes    [][][][2]float64
}

func resolve(row int, in Input) (resolved, error) {
	switch in := in.(type) {
	case ArrayForm:
		return resolved{vertices: in}, nil
	case DictForm:
		if len(in.X) != len(in.Y) {
			return resolved{}, malformed(row, "x has %d values but y has %d", len(in.X), len(in.Y))
		}
		vs := make([][2]float64, len(in.X))
		for i := range in.X {
			vs[i] = [2]float64{in.X[i], in.Y[i]}
		}
		var holes [][][][2]float64
		if len(in.Holes) > 0 {
			holes = in.Holes
		}
		return resolved{vertices: vs, holes: holes}, nil
	case nil:
		return resolved{}, nil
	default:
		return resolved{}, malformed(row, "unsupported input %T", in)
	}
}

// isSeparator reports whether p is the (NaN, NaN) part separator. A pair with a
// single NaN coordinate is malformed.
func isSeparator(row int, p [2]float64) (bool, error) {
	xNaN, yNaN := math.IsNaN(p[0]), math.IsNaN(p[1])
	if xNaN != yNaN {
		return false, malformed(row, "half-NaN coordinate pair (%v, %v)", p[0], p[1])
	}
	return xNaN, nil
}

// splitParts splits vertices on the separator. Empty segments are dropped.
func splitParts(row int, vertices [][2]float64) ([]Ring, error) {
	var (
		parts   []Ring
		current Ring
	)
	for _, p := range vertices {
		sep, err := isSeparator(row, p)
		if err != nil {
			return nil, err
		}
		if sep {
			if len(current) > 0 {
				parts = append(parts, current)
			}
			current = nil
			continue
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts, nil
}

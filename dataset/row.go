package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/geometry"
)

// HolesKey is the row key holding polygon holes.
const HolesKey = "holes"

// Row is one row-oriented input record.
type Row struct {
	Geometry geometry.Input
	Attrs    attribute.Document
}

// Record is one row-oriented output record.
type Record struct {
	X     []float64
	Y     []float64
	Holes [][][][2]float64
	Attrs attribute.Document
}

// Row returns the record as a Row so it can be fed back into New.
func (r Record) Row() Row {
	return Row{
		Geometry: geometry.DictForm{X: r.X, Y: r.Y, Holes: r.Holes},
		Attrs:    r.Attrs,
	}
}

// RowFromArray builds a row from (x, y) vertices and optional attributes.
func RowFromArray(vertices [][2]float64, attrs attribute.Document) Row {
	return Row{Geometry: geometry.ArrayForm(vertices), Attrs: attrs}
}

// RowFromMap builds a row from a dict-style record. The coordinate keys
// default to "x" and "y"; "holes" carries polygon holes and every other key is
// an attribute. A scalar coordinate broadcasts to the length of the other one.
func RowFromMap(m map[string]any, kdims ...string) (Row, error) {
	xKey, yKey := DefaultKDims[0], DefaultKDims[1]
	if len(kdims) == 2 {
		xKey, yKey = kdims[0], kdims[1]
	}

	xs, xScalar, err := coordsFromAny(m[xKey])
	if err != nil {
		return Row{}, fmt.Errorf("%w: %s: %w", ErrInvalidRow, xKey, err)
	}
	ys, yScalar, err := coordsFromAny(m[yKey])
	if err != nil {
		return Row{}, fmt.Errorf("%w: %s: %w", ErrInvalidRow, yKey, err)
	}
	switch {
	case xScalar && !yScalar && ys != nil:
		xs = broadcast(xs[0], len(ys))
	case yScalar && !xScalar && xs != nil:
		ys = broadcast(ys[0], len(xs))
	}

	var holes [][][][2]float64
	if raw, ok := m[HolesKey]; ok && raw != nil {
		holes, err = holesFromAny(raw)
		if err != nil {
			return Row{}, fmt.Errorf("%w: %s: %w", ErrInvalidRow, HolesKey, err)
		}
	}

	var attrs attribute.Document
	for k, v := range m {
		if k == xKey || k == yKey || k == HolesKey {
			continue
		}
		if attrs == nil {
			attrs = make(attribute.Document, len(m))
		}
		av, err := attribute.FromAny(v)
		if err != nil {
			return Row{}, fmt.Errorf("%w: %s: %w", ErrInvalidRow, k, err)
		}
		attrs[k] = av
	}

	return Row{Geometry: geometry.DictForm{X: xs, Y: ys, Holes: holes}, Attrs: attrs}, nil
}

func broadcast(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// coordsFromAny accepts a number, a numeric slice or nil. scalar reports a single number.
func coordsFromAny(v any) (coords []float64, scalar bool, err error) {
	switch x := v.(type) {
	case nil:
		return nil, false, nil
	case []float64:
		return slices.Clone(x), false, nil
	case []float32:
		out := make([]float64, len(x))
		for i := range x {
			out[i] = float64(x[i])
		}
		return out, false, nil
	case []int:
		out := make([]float64, len(x))
		for i := range x {
			out[i] = float64(x[i])
		}
		return out, false, nil
	case []int64:
		out := make([]float64, len(x))
		for i := range x {
			out[i] = float64(x[i])
		}
		return out, false, nil
	case []any:
		out := make([]float64, len(x))
		for i := range x {
			if x[i] == nil {
				out[i] = math.NaN()
				continue
			}
			f, ok := toFloat(x[i])
			if !ok {
				return nil, false, fmt.Errorf("element %d has type %T", i, x[i])
			}
			out[i] = f
		}
		return out, false, nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return nil, false, fmt.Errorf("unsupported coordinate type %T", v)
		}
		return []float64{f}, true, nil
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// holesFromAny accepts the typed nesting or the same nesting built from []any,
// as produced by JSON decoding.
func holesFromAny(v any) ([][][][2]float64, error) {
	switch x := v.(type) {
	case [][][][2]float64:
		return x, nil
	case []any:
		parts := make([][][][2]float64, len(x))
		for p, part := range x {
			rings, ok := part.([]any)
			if !ok {
				return nil, fmt.Errorf("part %d has type %T", p, part)
			}
			parts[p] = make([][][2]float64, len(rings))
			for r, ring := range rings {
				vertices, ok := ring.([]any)
				if !ok {
					return nil, fmt.Errorf("part %d ring %d has type %T", p, r, ring)
				}
				parts[p][r] = make([][2]float64, len(vertices))
				for i, vertex := range vertices {
					pair, err := pairFromAny(vertex)
					if err != nil {
						return nil, fmt.Errorf("part %d ring %d vertex %d: %w", p, r, i, err)
					}
					parts[p][r][i] = pair
				}
			}
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("unsupported holes type %T", v)
	}
}

func pairFromAny(v any) ([2]float64, error) {
	switch x := v.(type) {
	case [2]float64:
		return x, nil
	case []float64:
		if len(x) == 2 {
			return [2]float64{x[0], x[1]}, nil
		}
	case []any:
		if len(x) == 2 {
			a, okA := toFloat(x[0])
			b, okB := toFloat(x[1])
			if okA && okB {
				return [2]float64{a, b}, nil
			}
		}
	}
	return [2]float64{}, fmt.Errorf("vertex must be an (x, y) pair, got %v", v)
}

package geometry

import "math"

// Output is the row-oriented form of one value: x and y with a (NaN, NaN)
// pair before every part after the first, and polygon holes listed per part.
type Output struct {
	X     []float64
	Y     []float64
	Holes [][][][2]float64
}

// Input returns the output as a DictForm so it can be encoded again.
func (o Output) Input() Input {
	return DictForm{X: o.X, Y: o.Y, Holes: o.Holes}
}

// Vertices returns the output as (x, y) pairs, separators included.
func (o Output) Vertices() [][2]float64 {
	out := make([][2]float64, len(o.X))
	for i := range o.X {
		out[i] = [2]float64{o.X[i], o.Y[i]}
	}
	return out
}

// Decode expands every value of col into its row-oriented form.
func Decode(col *Column) []Output {
	out := make([]Output, col.Len())
	for i, v := range col.values {
		out[i] = DecodeValue(v)
	}
	return out
}

// DecodeValue expands one value. The value is not modified.
func DecodeValue(v Value) Output {
	out := Output{
		X: make([]float64, 0, v.NumVertices()+v.NumParts()),
		Y: make([]float64, 0, v.NumVertices()+v.NumParts()),
	}
	switch v.kind {
	case KindPoint, KindMultiPoint, KindLine, KindMultiLine:
		for p, part := range v.Parts() {
			if p > 0 {
				out.appendSeparator()
			}
			for _, ring := range part {
				out.appendRing(ring)
			}
		}
	case KindPolygon, KindMultiPolygon:
		parts := v.Parts()
		holes := make([][][][2]float64, len(parts))
		anyHoles := false
		for p, part := range parts {
			if p > 0 {
				out.appendSeparator()
			}
			holes[p] = [][][2]float64{}
			if len(part) == 0 {
				continue
			}
			out.appendRing(part[0])
			for _, hole := range part[1:] {
				holes[p] = append(holes[p], [][2]float64(hole))
				anyHoles = true
			}
		}
		if anyHoles {
			out.Holes = holes
		}
	}
	return out
}

func (o *Output) appendSeparator() {
	o.X = append(o.X, math.NaN())
	o.Y = append(o.Y, math.NaN())
}

func (o *Output) appendRing(r Ring) {
	for _, p := range r {
		o.X = append(o.X, p[0])
		o.Y = append(o.Y, p[1])
	}
}

package testutil

import "math"

// Points returns n single-point rows with a "value" attribute.
func (r *RNG) Points(n int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		x, y := r.Coordinate()
		rows[i] = map[string]any{"x": x, "y": y, "value": r.Float64()}
	}
	return rows
}

// Tracks returns rows of random walks. With parts > 1 the walks of a row are
// joined with NaN separators, giving multi-lines.
func (r *RNG) Tracks(rows, vertices, parts int) []map[string]any {
	out := make([]map[string]any, rows)
	for i := range out {
		var xs, ys []float64
		for p := range parts {
			x, y := r.Coordinate()
			if p > 0 {
				xs, ys = append(xs, math.NaN()), append(ys, math.NaN())
			}
			for _, v := range r.Walk(x, y, vertices) {
				xs, ys = append(xs, v[0]), append(ys, v[1])
			}
		}
		out[i] = map[string]any{"x": xs, "y": ys, "track": int64(i)}
	}
	return out
}

// Polygons returns single-part polygon rows with holes holes each.
func (r *RNG) Polygons(rows, vertices, holes int) []map[string]any {
	return r.MultiPolygons(rows, vertices, 1, holes)
}

// MultiPolygons returns polygon rows of parts non-overlapping parts, each
// with holes holes. Holes lie strictly inside their outer ring.
func (r *RNG) MultiPolygons(rows, vertices, parts, holes int) []map[string]any {
	const radius = 1.0

	out := make([]map[string]any, rows)
	for i := range out {
		cx, cy := r.Coordinate()
		var xs, ys []float64
		partHoles := make([][][][2]float64, parts)
		for p := range parts {
			px := cx + float64(p)*4*radius
			if p > 0 {
				xs, ys = append(xs, math.NaN()), append(ys, math.NaN())
			}
			for _, v := range r.Ring(px, cy, radius, vertices) {
				xs, ys = append(xs, v[0]), append(ys, v[1])
			}

			partHoles[p] = make([][][2]float64, holes)
			for h := range holes {
				// Holes sit on a circle of 0.4 radius, each at most 0.2 wide.
				a := 2 * math.Pi * float64(h) / float64(max(holes, 1))
				hx, hy := px, cy
				if holes > 1 {
					hx, hy = px+0.4*radius*math.Cos(a), cy+0.4*radius*math.Sin(a)
				}
				partHoles[p][h] = r.Ring(hx, hy, 0.2*radius/float64(holes), max(vertices/2, 3))
			}
		}
		row := map[string]any{"x": xs, "y": ys, "parcel": int64(i)}
		if holes > 0 {
			row["holes"] = partHoles
		}
		out[i] = row
	}
	return out
}

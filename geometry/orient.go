package geometry

import "slices"

// SignedArea returns the shoelace signed area of a ring. Positive means
// counter-clockwise, negative clockwise. The ring need not be closed.
func SignedArea(r Ring) float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return sum / 2
}

// orient returns r running counter-clockwise when ccw is set, clockwise
// otherwise. Degenerate rings with zero area are returned unchanged.
func orient(r Ring, ccw bool) Ring {
	area := SignedArea(r)
	if area == 0 || (area > 0) == ccw {
		return r
	}
	out := slices.Clone(r)
	slices.Reverse(out)
	return out
}

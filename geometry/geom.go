package geometry

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

// ToGeom converts a value to the equivalent go-geom type. go-geom uses the same
// flat coordinates plus end offsets, so no re-segmentation is needed.
func ToGeom(v Value) geom.T {
	coords := v.BufferValues()
	switch v.kind {
	case KindPoint:
		if v.IsEmpty() {
			return geom.NewPointEmpty(geom.XY)
		}
		return geom.NewPointFlat(geom.XY, coords)
	case KindMultiPoint:
		return geom.NewMultiPointFlat(geom.XY, coords)
	case KindLine:
		return geom.NewLineStringFlat(geom.XY, coords)
	case KindMultiLine:
		return geom.NewMultiLineStringFlat(geom.XY, coords, v.RingEnds())
	case KindPolygon:
		return geom.NewPolygonFlat(geom.XY, coords, v.RingEnds())
	case KindMultiPolygon:
		endss := make([][]int, len(v.partEnds))
		start := 0
		for i, end := range v.partEnds {
			endss[i] = append([]int{}, v.ringEnds[start:end]...)
			start = end
		}
		return geom.NewMultiPolygonFlat(geom.XY, coords, endss)
	default:
		return nil
	}
}

// FromGeom converts a go-geom geometry to a value. Z and M ordinates are
// dropped, empty parts are skipped and polygon rings are oriented the same way
// Encode orients them.
func FromGeom(g geom.T) (Value, error) {
	var b builder
	switch g := g.(type) {
	case *geom.Point:
		if g.Empty() {
			return Value{kind: KindPoint}, nil
		}
		ring, err := projectRing(g.FlatCoords(), g.Stride())
		if err != nil {
			return Value{}, err
		}
		b.addRing(ring)
		b.endPart()
		return b.value(KindPoint), nil
	case *geom.MultiPoint:
		var ring Ring
		for i := range g.NumPoints() {
			p := g.Point(i)
			if p.Empty() {
				continue
			}
			r, err := projectRing(p.FlatCoords(), p.Stride())
			if err != nil {
				return Value{}, err
			}
			ring = append(ring, r...)
		}
		if len(ring) > 0 {
			b.addRing(ring)
			b.endPart()
		}
		return b.value(KindMultiPoint), nil
	case *geom.LineString:
		if err := addLine(&b, g); err != nil {
			return Value{}, err
		}
		return b.value(KindLine), nil
	case *geom.MultiLineString:
		for i := range g.NumLineStrings() {
			if err := addLine(&b, g.LineString(i)); err != nil {
				return Value{}, err
			}
		}
		return b.value(KindMultiLine), nil
	case *geom.Polygon:
		if err := addPolygon(&b, g); err != nil {
			return Value{}, err
		}
		return b.value(KindPolygon), nil
	case *geom.MultiPolygon:
		for i := range g.NumPolygons() {
			if err := addPolygon(&b, g.Polygon(i)); err != nil {
				return Value{}, err
			}
		}
		return b.value(KindMultiPolygon), nil
	case nil:
		return Value{}, fmt.Errorf("%w: nil geometry", ErrUnsupportedGeometry)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
}

func addLine(b *builder, ls *geom.LineString) error {
	ring, err := projectRing(ls.FlatCoords(), ls.Stride())
	if err != nil {
		return err
	}
	if len(ring) == 0 {
		return nil
	}
	b.addRing(ring)
	b.endPart()
	return nil
}

func addPolygon(b *builder, p *geom.Polygon) error {
	if p.NumLinearRings() == 0 {
		return nil
	}
	outer, err := projectRing(p.LinearRing(0).FlatCoords(), p.Stride())
	if err != nil {
		return err
	}
	if len(outer) == 0 {
		return nil
	}
	b.addRing(orient(outer, true))
	for i := 1; i < p.NumLinearRings(); i++ {
		hole, err := projectRing(p.LinearRing(i).FlatCoords(), p.Stride())
		if err != nil {
			return err
		}
		if len(hole) == 0 {
			continue
		}
		b.addRing(orient(hole, false))
	}
	b.endPart()
	return nil
}

// projectRing keeps the x and y ordinates of a strided coordinate slice.
func projectRing(flat []float64, stride int) (Ring, error) {
	if stride < 2 {
		return nil, malformed(-1, "stride %d", stride)
	}
	ring := make(Ring, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		x, y := flat[i], flat[i+1]
		if math.IsNaN(x) || math.IsNaN(y) {
			return nil, malformed(-1, "NaN coordinate in foreign geometry")
		}
		ring = append(ring, [2]float64{x, y})
	}
	return ring, nil
}

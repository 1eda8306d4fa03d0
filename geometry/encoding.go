package geometry

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// MarshalWKT returns the well-known text of v.
func MarshalWKT(v Value) (string, error) {
	g := ToGeom(v)
	if g == nil {
		return "", fmt.Errorf("%w: kind %s", ErrUnsupportedGeometry, v.kind)
	}
	return wkt.Marshal(g)
}

// ParseWKT parses well-known text into a value.
func ParseWKT(s string) (Value, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Value{}, fmt.Errorf("parse wkt: %w", err)
	}
	return FromGeom(g)
}

// MarshalWKB returns the little-endian well-known binary of v.
func MarshalWKB(v Value) ([]byte, error) {
	g := ToGeom(v)
	if g == nil {
		return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedGeometry, v.kind)
	}
	return wkb.Marshal(g, wkb.NDR)
}

// ParseWKB parses well-known binary into a value.
func ParseWKB(b []byte) (Value, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return Value{}, fmt.Errorf("parse wkb: %w", err)
	}
	return FromGeom(g)
}

// MarshalGeoJSON returns the GeoJSON geometry object of v.
func MarshalGeoJSON(v Value) ([]byte, error) {
	g := ToGeom(v)
	if g == nil {
		return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedGeometry, v.kind)
	}
	return geojson.Marshal(g)
}

// ParseGeoJSON parses a GeoJSON geometry object into a value.
func ParseGeoJSON(b []byte) (Value, error) {
	var g geom.T
	if err := geojson.Unmarshal(b, &g); err != nil {
		return Value{}, fmt.Errorf("parse geojson: %w", err)
	}
	return FromGeom(g)
}

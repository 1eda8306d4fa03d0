// Package geometry implements the geometry buffer codec.
//
// A column of per-row shapes is stored as one flat coordinate buffer per row
// (interleaved x,y) plus explicit integer structure: the end offset of every
// ring and the end index of every part. The row-oriented form uses a (NaN, NaN)
// coordinate pair to separate parts; that sentinel never reaches the buffer.
//
// # Kinds
//
// Six kinds exist, in three families:
//
//   - Points: Point, MultiPoint
//   - Lines: Line, MultiLine
//   - Polygons: Polygon, MultiPolygon
//
// A column's kind is the most general kind any of its rows needs: one row with
// two parts escalates the whole column to the Multi- kind of its family.
//
// # Encoding
//
//	col, err := geometry.Encode(geometry.ElementPath, []geometry.Input{
//	    geometry.DictForm{X: []float64{1, 2, 3}, Y: []float64{2, 0, 7}},
//	    geometry.DictForm{X: []float64{3, 2, 1}, Y: []float64{7, 0, 2}},
//	})
//	// col.Kind() == geometry.KindLine
//	// col.At(0).BufferValues() == []float64{1, 2, 2, 0, 3, 7}
//
// Polygon rings are normalised on encode: outer rings run counter-clockwise and
// holes clockwise.
//
// # Decoding
//
// Decode turns a column back into row-oriented Outputs with NaN separators
// between parts and polygon holes listed per part.
//
// # Interop
//
// Values convert to and from github.com/twpayne/go-geom types, which share the
// flat-coordinates-plus-ends layout, and through them to WKT, WKB and GeoJSON.
package geometry

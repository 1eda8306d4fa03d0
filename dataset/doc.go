// Package dataset pairs an encoded geometry column with per-row attribute
// columns.
//
// A Dataset is stored in one of two datatypes:
//
//   - Spatial: geometries live in the buffer representation of package geometry.
//   - MultiTabular: geometries are kept as exploded row-oriented records with
//     NaN part separators and explicit hole lists.
//
// Clone converts between the two without loss.
//
// Example:
//
//	ds, err := dataset.New(geometry.ElementPath, []dataset.Row{
//	    {Geometry: geometry.DictForm{X: []float64{1, 2, 3}, Y: []float64{2, 0, 7}}},
//	})
//	exploded, err := ds.Clone(dataset.MultiTabular)
//
// Operations that need one flat geometry per cell (GroupBy on a Multi- column,
// ILoc on a geometry dimension of anything but points) fail with a DataError
// instead of silently picking a part.
package dataset

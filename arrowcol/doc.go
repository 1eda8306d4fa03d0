// Package arrowcol converts datasets to and from Apache Arrow records.
//
// The geometry column keeps the buffer layout: interleaved x,y coordinates in
// a Float64 list, nested once per structural level the kind needs.
//
//	Point, MultiPoint, Line  list<float64>
//	MultiLine, Polygon       list<list<float64>>          (rings)
//	MultiPolygon             list<list<list<float64>>>    (parts, rings)
//
// The geometry field carries its kind and coordinate dimension names as field
// metadata. Attribute columns become Int64, Float64, String or Boolean arrays;
// nulls are Arrow nulls.
package arrowcol

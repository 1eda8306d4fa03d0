// Package testutil provides testing utilities for geobuf.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic random geometry rows in the dict form
// accepted by geobuf.NewPoints, geobuf.NewPath and geobuf.NewPolygons.
//
// # Random Geometry Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.Points(1000)          // one (x, y) per row
//	tracks := rng.Tracks(100, 64, 2)    // multi-lines, 2 parts of 64 vertices
//	parcels := rng.Polygons(100, 16, 1) // polygons with one hole
package testutil

// Package geobuf encodes tabular spatial data into a flat geometry buffer.
//
// Rows of points, paths or polygons come in either array form ((x, y)
// vertices with NaN separators between parts) or dict form (x and y
// sequences plus optional holes and attributes). They are encoded into a
// columnar buffer of interleaved coordinates with explicit ring and part
// offsets, and decoded back into the exploded row-per-vertex form.
//
// # Quick Start
//
//	ds, _ := geobuf.NewPolygons([]map[string]any{
//	    {"x": []float64{1, 2, 3}, "y": []float64{2, 0, 7}, "z": 0},
//	})
//	v, _ := ds.GeometryAt(0)
//	fmt.Println(v.BufferValues()) // [1 2 2 0 3 7]
//
// # Datatypes
//
// A dataset is stored either as "spatial" (buffer backed) or as
// "multitabular" (exploded records). Clone converts between the two without
// loss:
//
//	mt, _ := ds.Clone(dataset.MultiTabular)
//
// # Persistence
//
// Save and Load write a dataset to any blobstore.BlobStore: memory, the
// local file system, MinIO or S3.
//
//	store := blobstore.NewLocalStore("./data")
//	_, _ = geobuf.Save(ctx, store, "parcels", ds)
//	ds, _ = geobuf.Load(ctx, store, "parcels")
//
// # Packages
//
//   - geometry: kinds, buffer values, Encode and Decode, WKT/WKB/GeoJSON
//   - attribute: typed scalar attribute values
//   - dataset: geometry plus attribute columns, GroupBy, ILoc, Clone
//   - arrowcol: Apache Arrow records
//   - persistence: binary column format and manifests
//   - blobstore: storage backends
package geobuf

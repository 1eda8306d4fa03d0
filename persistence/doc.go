// Package persistence stores datasets as binary blobs on a blobstore.BlobStore.
//
// A saved dataset named "cities" consists of:
//
//	cities/geometry.gbuf    geometry column (coords, ring ends, part ends)
//	cities/attr-0000.gbuf   one blob per attribute column, in vdims order
//	cities/manifest.json    kind, datatype, dimensions and blob names
//
// Every blob starts with a 64-byte little-endian FileHeader followed by an
// optionally compressed payload (zstd or LZ4) guarded by a CRC32 checksum.
// The manifest is written last and acts as the commit point.
package persistence

package persistence

import "errors"

const (
	// MagicNumber identifies geobuf blob files ("GBUF" on disk).
	MagicNumber = 0x46554247
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000
)

// BlobType tells what a blob file holds.
type BlobType uint8

const (
	// BlobGeometry holds one encoded geometry column.
	BlobGeometry BlobType = 1
	// BlobAttribute holds one attribute column.
	BlobAttribute BlobType = 2
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrInvalidBlob    = errors.New("invalid blob")
)

// FileHeader is the 64-byte little-endian header at the start of every blob.
// The checksum covers the stored (possibly compressed) payload.
type FileHeader struct {
	Magic       uint32 // MagicNumber
	Version     uint32 // File format version
	BlobType    BlobType
	Kind        uint8 // geometry.Kind for geometry blobs
	Compression Compression
	Padding1    uint8
	Rows        uint64 // Number of rows
	Coords      uint64 // Total floats in the coordinate section
	Rings       uint64 // Total ring ends
	Parts       uint64 // Total part ends
	RawSize     uint64 // Payload size before compression
	PayloadSize uint64 // Stored payload size
	Checksum    uint32 // CRC32 of the stored payload
	Reserved    [4]byte
}

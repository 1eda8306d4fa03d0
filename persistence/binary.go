package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/geometry"
)

var headerSize = binary.Size(FileHeader{})

// writeBlob compresses raw, fills in the size, compression and checksum
// fields of h and writes header and payload to w.
func writeBlob(w io.Writer, h *FileHeader, raw []byte, c Compression) (int64, error) {
	payload, used, err := compress(raw, c)
	if err != nil {
		return 0, err
	}
	h.Magic = MagicNumber
	h.Version = Version
	h.Compression = used
	h.RawSize = uint64(len(raw))
	h.PayloadSize = uint64(len(payload))
	h.Checksum = checksum(payload)

	cw := &countingWriter{w: w}
	if err := binary.Write(cw, binary.LittleEndian, h); err != nil {
		return cw.n, err
	}
	_, err = cw.Write(payload)
	return cw.n, err
}

// readBlob reads and validates one blob and returns its header and raw payload.
func readBlob(r io.Reader, want BlobType) (*FileHeader, []byte, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, nil, fmt.Errorf("%w: header: %w", ErrInvalidBlob, err)
	}
	if h.Magic != MagicNumber {
		return nil, nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	if h.BlobType != want {
		return nil, nil, fmt.Errorf("%w: blob type %d, want %d", ErrInvalidBlob, h.BlobType, want)
	}

	payload := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, nil, fmt.Errorf("%w: payload: %w", ErrInvalidBlob, err)
	}
	if err := verifyChecksum(&h, payload); err != nil {
		return nil, nil, err
	}
	raw, err := decompress(payload, h.Compression, h.RawSize)
	if err != nil {
		return nil, nil, err
	}
	return &h, raw, nil
}

// WriteColumn writes a geometry column as one blob and returns the number of
// bytes written.
//
// Payload layout: per row (coords, rings, parts) counts as uint32, then all
// coordinates as float64, then all ring ends and part ends as uint32. Ends are
// row-local, exactly as in geometry.Value.
func WriteColumn(w io.Writer, col *geometry.Column, c Compression) (int64, error) {
	values := col.Values()
	h := &FileHeader{
		BlobType: BlobGeometry,
		Kind:     uint8(col.Kind()),
		Rows:     uint64(len(values)),
	}
	for _, v := range values {
		h.Coords += uint64(2 * v.NumVertices())
		h.Rings += uint64(v.NumRings())
		h.Parts += uint64(v.NumParts())
	}

	raw := make([]byte, 0, len(values)*12+int(h.Coords)*8+int(h.Rings+h.Parts)*4)
	for _, v := range values {
		raw = binary.LittleEndian.AppendUint32(raw, uint32(2*v.NumVertices()))
		raw = binary.LittleEndian.AppendUint32(raw, uint32(v.NumRings()))
		raw = binary.LittleEndian.AppendUint32(raw, uint32(v.NumParts()))
	}
	for _, v := range values {
		for _, f := range v.BufferValues() {
			raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(f))
		}
	}
	for _, v := range values {
		for _, e := range v.RingEnds() {
			raw = binary.LittleEndian.AppendUint32(raw, uint32(e))
		}
	}
	for _, v := range values {
		for _, e := range v.PartEnds() {
			raw = binary.LittleEndian.AppendUint32(raw, uint32(e))
		}
	}
	return writeBlob(w, h, raw, c)
}

// ReadColumn reads a geometry column written by WriteColumn.
func ReadColumn(r io.Reader) (*geometry.Column, error) {
	h, raw, err := readBlob(r, BlobGeometry)
	if err != nil {
		return nil, err
	}
	kind := geometry.Kind(h.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: geometry kind %d", ErrInvalidBlob, h.Kind)
	}
	if uint64(len(raw)) != h.Rows*12+h.Coords*8+(h.Rings+h.Parts)*4 {
		return nil, fmt.Errorf("%w: payload size %d does not match header counts", ErrInvalidBlob, len(raw))
	}

	sr := newSliceReader(raw)
	counts := make([][3]int, h.Rows)
	for i := range counts {
		for j := range 3 {
			n, err := sr.readUint32()
			if err != nil {
				return nil, err
			}
			counts[i][j] = int(n)
		}
	}
	coords, err := sr.readFloat64s(int(h.Coords))
	if err != nil {
		return nil, err
	}
	ringEnds, err := sr.readInts(int(h.Rings))
	if err != nil {
		return nil, err
	}
	partEnds, err := sr.readInts(int(h.Parts))
	if err != nil {
		return nil, err
	}

	values := make([]geometry.Value, h.Rows)
	var co, ro, po int
	for i, n := range counts {
		if co+n[0] > len(coords) || ro+n[1] > len(ringEnds) || po+n[2] > len(partEnds) {
			return nil, fmt.Errorf("%w: row %d counts exceed header totals", ErrInvalidBlob, i)
		}
		v, err := geometry.NewValue(kind,
			coords[co:co+n[0]:co+n[0]],
			ringEnds[ro:ro+n[1]:ro+n[1]],
			partEnds[po:po+n[2]:po+n[2]],
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBlob, err)
		}
		values[i] = v
		co, ro, po = co+n[0], ro+n[1], po+n[2]
	}
	return geometry.NewColumn(kind, values)
}

// WriteAttribute writes one attribute column as a blob.
func WriteAttribute(w io.Writer, values []attribute.Value, c Compression) (int64, error) {
	raw, err := attribute.MarshalColumn(values)
	if err != nil {
		return 0, err
	}
	h := &FileHeader{
		BlobType: BlobAttribute,
		Rows:     uint64(len(values)),
	}
	return writeBlob(w, h, raw, c)
}

// ReadAttribute reads an attribute column written by WriteAttribute.
func ReadAttribute(r io.Reader) ([]attribute.Value, error) {
	h, raw, err := readBlob(r, BlobAttribute)
	if err != nil {
		return nil, err
	}
	values, err := attribute.UnmarshalColumn(raw)
	if err != nil {
		return nil, err
	}
	if uint64(len(values)) != h.Rows {
		return nil, fmt.Errorf("%w: %d attribute values, header says %d", ErrInvalidBlob, len(values), h.Rows)
	}
	return values, nil
}

// MarshalColumn is WriteColumn into a byte slice.
func MarshalColumn(col *geometry.Column, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteColumn(&buf, col, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package persistence

import (
	"encoding/binary"
	"fmt"
	"math"
)

// sliceReader provides bounds-checked little-endian reads from a byte slice.
type sliceReader struct {
	b   []byte
	off int
}

func newSliceReader(b []byte) *sliceReader {
	return &sliceReader{b: b}
}

func (r *sliceReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, fmt.Errorf("%w: out of bounds read (%d bytes at %d, len=%d)", ErrInvalidBlob, n, r.off, len(r.b))
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *sliceReader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *sliceReader) readFloat64s(n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.readBytes(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(bb[i*8:]))
	}
	return out, nil
}

func (r *sliceReader) readInts(n int) ([]int, error) {
	if n == 0 {
		return nil, nil
	}
	bb, err := r.readBytes(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(binary.LittleEndian.Uint32(bb[i*4:]))
	}
	return out, nil
}

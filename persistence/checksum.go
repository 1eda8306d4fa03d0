package persistence

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Payloads carry an IEEE CRC32 in the blob header. It catches truncated or
// bit-flipped blobs, not deliberate tampering.
var crcTable = crc32.MakeTable(crc32.IEEE)

func checksum(payload []byte) uint32 {
	return crc32.Checksum(payload, crcTable)
}

// ChecksumMismatchError reports a payload whose CRC32 differs from the one
// stored in its header.
type ChecksumMismatchError struct {
	BlobType BlobType
	Stored   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch in blob type %d: stored 0x%08x, computed 0x%08x",
		e.BlobType, e.Stored, e.Computed)
}

// IsChecksumMismatch reports whether err wraps a ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}

func verifyChecksum(h *FileHeader, payload []byte) error {
	if sum := checksum(payload); sum != h.Checksum {
		return &ChecksumMismatchError{BlobType: h.BlobType, Stored: h.Checksum, Computed: sum}
	}
	return nil
}

// countingWriter tracks how many bytes reached w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

package blobstore

import (
	"bytes"
	"context"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in a map. It is safe for concurrent use and is the
// store of choice for tests and throwaway datasets.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

// set stores a private copy of data. Stored slices are never written again,
// so open blobs keep reading the version they opened.
func (m *MemoryStore) set(name string, data []byte) {
	m.mu.Lock()
	m.blobs[name] = bytes.Clone(data)
	m.mu.Unlock()
}

func (m *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytesBlob(data), nil
}

// Create buffers writes and stores the blob on Close.
func (m *MemoryStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &bufferedBlob{commit: func(b []byte) { m.set(name, b) }}, nil
}

func (m *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.set(name, data)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := slices.Sorted(maps.Keys(m.blobs))
	return slices.DeleteFunc(names, func(n string) bool { return !strings.HasPrefix(n, prefix) }), nil
}

// Usage returns the number of blobs and their total size in bytes.
func (m *MemoryStore) Usage() (blobs int, size int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.blobs {
		size += int64(len(b))
	}
	return len(m.blobs), size
}

// bytesBlob reads from an immutable byte slice.
type bytesBlob []byte

func (b bytesBlob) Size() int64 { return int64(len(b)) }

func (b bytesBlob) Close() error { return nil }

func (b bytesBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 || off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b bytesBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off >= int64(len(b)) {
		return nil, io.EOF
	}
	return io.NopCloser(bytes.NewReader(b[off:min(off+length, int64(len(b)))])), nil
}

// bufferedBlob collects writes and hands them to commit once.
type bufferedBlob struct {
	buf    bytes.Buffer
	commit func([]byte)
	closed bool
}

func (w *bufferedBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *bufferedBlob) Sync() error { return nil }

func (w *bufferedBlob) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.commit(w.buf.Bytes())
	return nil
}

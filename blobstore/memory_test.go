package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abcdef")
	require.NoError(t, store.Put(ctx, "a/1", data))
	data[0] = 'x'

	blob, err := store.Open(ctx, "a/1")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "a/1", []byte("replaced")))

	buf := make([]byte, 6)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(buf), "open blob sees the version it opened")

	got, err := ReadAll(ctx, store, "a/1")
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(got))

	require.NoError(t, store.Put(ctx, "b/1", nil))
	count, size := store.Usage()
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(8), size)
}

func TestMemoryStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Put(ctx, "a", nil), context.Canceled)
	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Create(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("polys/manifest.json"))
	assert.Equal(t, "application/octet-stream", ContentType("polys/geometry.gbuf"))
	assert.Equal(t, "application/octet-stream", ContentType("polys/attr-0000.gbuf"))
	assert.Equal(t, "application/octet-stream", ContentType("plain"))
}

package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore runs the behaviour every BlobStore must share against a fresh
// store, laid out the way a saved dataset is.
func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	geometry := []byte("GBUF0123456789")
	require.NoError(t, store.Put(ctx, "parcels/geometry.gbuf", geometry))
	require.NoError(t, store.Put(ctx, "parcels/manifest.json", []byte(`{"version":1}`)))
	require.NoError(t, store.Put(ctx, "parcels2/manifest.json", nil))

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx, "parcels/")
		require.NoError(t, err)
		assert.Equal(t, []string{"parcels/geometry.gbuf", "parcels/manifest.json"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("ReadAt", func(t *testing.T) {
		blob, err := store.Open(ctx, "parcels/geometry.gbuf")
		require.NoError(t, err)
		defer func() { _ = blob.Close() }()
		assert.Equal(t, int64(len(geometry)), blob.Size())

		head := make([]byte, 4)
		n, err := blob.ReadAt(ctx, head, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "GBUF", string(head))

		tail := make([]byte, 8)
		n, err = blob.ReadAt(ctx, tail, 10)
		assert.Equal(t, 4, n)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "6789", string(tail[:n]))

		_, err = blob.ReadAt(ctx, tail, int64(len(geometry)))
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("ReadRange", func(t *testing.T) {
		blob, err := store.Open(ctx, "parcels/geometry.gbuf")
		require.NoError(t, err)
		defer func() { _ = blob.Close() }()

		rc, err := blob.ReadRange(ctx, 4, 100)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "0123456789", string(data))

		_, err = blob.ReadRange(ctx, 100, 1)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("Create", func(t *testing.T) {
		w, err := store.Create(ctx, "parcels/attr-0000.gbuf")
		require.NoError(t, err)
		_, err = w.Write([]byte("zone"))
		require.NoError(t, err)

		_, err = store.Open(ctx, "parcels/attr-0000.gbuf")
		assert.ErrorIs(t, err, ErrNotFound, "visible before Close")

		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		got, err := ReadAll(ctx, store, "parcels/attr-0000.gbuf")
		require.NoError(t, err)
		assert.Equal(t, "zone", string(got))
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := ReadAll(ctx, store, "parcels2/manifest.json")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "parcels/manifest.json"))
		require.NoError(t, store.Delete(ctx, "parcels/manifest.json"))

		_, err := store.Open(ctx, "parcels/manifest.json")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = ReadAll(ctx, store, "parcels/manifest.json")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStores(t *testing.T) {
	t.Run("Memory", func(t *testing.T) { testStore(t, NewMemoryStore()) })
	t.Run("Local", func(t *testing.T) { testStore(t, NewLocalStore(t.TempDir())) })
	t.Run("RateLimited", func(t *testing.T) { testStore(t, NewRateLimitedStore(NewMemoryStore())) })
}

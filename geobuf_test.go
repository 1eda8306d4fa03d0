package geobuf

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/blobstore"
	"github.com/hupe1980/geobuf/codec"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
	"github.com/hupe1980/geobuf/persistence"
)

var nan = math.NaN()

func multiPolygonRows() []map[string]any {
	holes := [][][][2]float64{
		{{{1.5, 2}, {2, 3}, {1.6, 1.6}}, {{2.1, 4.5}, {2.5, 5}, {2.3, 3.5}}},
		{},
	}
	return []map[string]any{
		{"x": []float64{1, 2, 3, nan, 6, 7, 3}, "y": []float64{2, 0, 7, nan, 7, 5, 2}, "holes": holes, "z": 1},
		{"x": []float64{3, 7, 6, nan, 1, 2, 3}, "y": []float64{2, 5, 7, nan, 2, 0, 7}, "z": 2},
	}
}

func TestConstructors(t *testing.T) {
	t.Run("Points", func(t *testing.T) {
		ds, err := NewPoints([]map[string]any{
			{"x": 0, "y": 1, "z": 0},
			{"x": 1, "y": 0, "z": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, geometry.KindPoint, ds.Kind())
		v, err := ds.GeometryAt(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0}, v.FlatValues())
	})

	t.Run("Path", func(t *testing.T) {
		ds, err := NewPath([]map[string]any{
			{"x": []float64{1, 2, 3}, "y": []float64{2, 0, 7}},
			{"x": []float64{3, 2, 1}, "y": []float64{7, 0, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, geometry.KindLine, ds.Kind())
		v, err := ds.GeometryAt(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 7, 2, 0, 1, 2}, v.BufferValues())
	})

	t.Run("Polygons", func(t *testing.T) {
		ds, err := NewPolygons(multiPolygonRows())
		require.NoError(t, err)
		assert.Equal(t, geometry.KindMultiPolygon, ds.Kind())

		v, err := ds.GeometryAt(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 2, 7, 5, 6, 7, 1, 2, 2, 0, 3, 7}, v.BufferValues())
	})

	t.Run("Options", func(t *testing.T) {
		ds, err := NewPoints([]map[string]any{{"lon": 1, "lat": 2, "z": 3}},
			WithKDims("lon", "lat"),
			WithKind(geometry.KindMultiPoint),
			WithDatatype(dataset.MultiTabular))
		require.NoError(t, err)
		assert.Equal(t, [2]string{"lon", "lat"}, ds.KDims())
		assert.Equal(t, geometry.KindMultiPoint, ds.Kind())
		assert.Equal(t, dataset.MultiTabular, ds.Datatype())
	})

	t.Run("Schema", func(t *testing.T) {
		_, err := NewPoints([]map[string]any{{"x": 0, "y": 0, "z": "a"}},
			WithSchema(attribute.Schema{"z": attribute.FieldTypeInt}))
		assert.ErrorIs(t, err, attribute.ErrSchemaViolation)
	})
}

func TestErrorTranslation(t *testing.T) {
	t.Run("MalformedRow", func(t *testing.T) {
		_, err := NewPath([]map[string]any{
			{"x": []float64{0, 1}, "y": []float64{0, 1}},
			{"x": []float64{1, 2}, "y": []float64{1}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedGeometry)

		var rowErr *ErrRow
		require.True(t, errors.As(err, &rowErr))
		assert.Equal(t, 1, rowErr.Row)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, err := NewPolygons([]map[string]any{{
			"x":     []float64{0, 1, 1},
			"y":     []float64{0, 0, 1},
			"holes": [][][][2]float64{{}, {}},
		}})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("Data", func(t *testing.T) {
		ds, err := NewPolygons([]map[string]any{
			{"x": []float64{1, 2, 3, nan, 6, 7, 3}, "y": []float64{2, 0, 7, nan, 7, 5, 2}, "z": 1},
			{"x": []float64{3, 7, 6}, "y": []float64{2, 5, 7}, "z": 1},
		})
		require.NoError(t, err)
		_, err = ds.GroupBy("z")
		assert.ErrorIs(t, err, ErrData)
	})

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()

	for _, c := range []persistence.Compression{
		persistence.CompressionNone,
		persistence.CompressionLZ4,
		persistence.CompressionZstd,
	} {
		t.Run(c.String(), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			ds, err := NewPolygons(multiPolygonRows())
			require.NoError(t, err)

			m, err := Save(ctx, store, "parcels", ds, WithCompression(c), WithCodec(codec.JSON{}))
			require.NoError(t, err)
			assert.Equal(t, c.String(), m.Compression)
			assert.Equal(t, 2, m.Rows)

			loaded, err := Load(ctx, store, "parcels", WithCodec(codec.JSON{}))
			require.NoError(t, err)
			assert.True(t, ds.Equal(loaded))
		})
	}

	t.Run("DatatypeOverride", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		ds, err := NewPolygons(multiPolygonRows())
		require.NoError(t, err)
		_, err = Save(ctx, store, "parcels", ds)
		require.NoError(t, err)

		loaded, err := Load(ctx, store, "parcels", WithDatatype(dataset.MultiTabular))
		require.NoError(t, err)
		assert.Equal(t, dataset.MultiTabular, loaded.Datatype())

		r, err := loaded.Record(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, r.X[:3])
		assert.True(t, math.IsNaN(r.X[3]))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := Load(ctx, blobstore.NewMemoryStore(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Corrupt", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		ds, err := NewPoints([]map[string]any{{"x": 0, "y": 1}})
		require.NoError(t, err)
		m, err := Save(ctx, store, "points", ds)
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, m.Geometry, []byte("not a geometry blob")))
		_, err = Load(ctx, store, "points")
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestExplode(t *testing.T) {
	ds, err := NewPolygons(multiPolygonRows())
	require.NoError(t, err)

	metrics := &BasicMetricsCollector{}
	records := Explode(ds, WithMetricsCollector(metrics))
	require.Len(t, records, 2)
	assert.Equal(t, []float64{2, 5, 7}, records[1].Y[:3])
	assert.EqualValues(t, 1, metrics.GetStats().DecodeCount)
	assert.EqualValues(t, 2, metrics.GetStats().DecodeRows)
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	store := blobstore.NewMemoryStore()

	ds, err := NewPolygons(multiPolygonRows(), WithMetricsCollector(metrics))
	require.NoError(t, err)
	_, err = NewPath([]map[string]any{{"x": []float64{1}, "y": []float64{1, 2}}}, WithMetricsCollector(metrics))
	require.Error(t, err)

	m, err := Save(ctx, store, "parcels", ds, WithMetricsCollector(metrics))
	require.NoError(t, err)
	_, err = Load(ctx, store, "parcels", WithMetricsCollector(metrics))
	require.NoError(t, err)
	_, err = Load(ctx, store, "missing", WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.EqualValues(t, 2, stats.EncodeCount)
	assert.EqualValues(t, 2, stats.EncodeRows)
	assert.EqualValues(t, 1, stats.EncodeErrors)
	assert.EqualValues(t, 1, stats.SaveCount)
	assert.Equal(t, m.Bytes, stats.SaveBytes)
	assert.EqualValues(t, 2, stats.LoadCount)
	assert.EqualValues(t, 1, stats.LoadErrors)
	assert.Equal(t, m.Bytes, stats.LoadBytes)
}

func TestLogging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ds, err := NewPoints([]map[string]any{{"x": 0, "y": 1}}, WithLogger(logger))
	require.NoError(t, err)
	_, err = Save(ctx, blobstore.NewMemoryStore(), "points", ds, WithLogger(logger))
	require.NoError(t, err)
	_, err = Load(ctx, blobstore.NewMemoryStore(), "points", WithLogger(logger))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"encode completed"`)
	assert.Contains(t, out, `"msg":"dataset saved"`)
	assert.Contains(t, out, `"kind":"Point"`)
	assert.Contains(t, out, `"msg":"load failed"`)
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil)).
		WithDataset("parcels").
		WithKind(geometry.KindPolygon).
		WithRows(3)
	logger.Info("hello")

	assert.Contains(t, buf.String(), "dataset=parcels")
	assert.Contains(t, buf.String(), "kind=Polygon")
	assert.Contains(t, buf.String(), "rows=3")

	assert.NotPanics(t, func() {
		NoopLogger().LogSave(context.Background(), "x", 0, errors.New("boom"))
	})
}

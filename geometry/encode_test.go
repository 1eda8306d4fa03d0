package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func bufferValues(col *Column) [][]float64 {
	out := make([][]float64, col.Len())
	for i := range out {
		out[i] = col.At(i).BufferValues()
	}
	return out
}

func TestEncodePoints(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		col, err := Encode(ElementPoints, []Input{
			ArrayForm{{0, 1}},
			ArrayForm{{1, 0}},
			ArrayForm{{2, 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindPoint, col.Kind())
		assert.Equal(t, []float64{0, 1}, col.At(0).FlatValues())
		assert.Equal(t, []float64{1, 0}, col.At(1).FlatValues())
		assert.Equal(t, []float64{2, 1}, col.At(2).FlatValues())
	})

	t.Run("RepeatedVertex", func(t *testing.T) {
		col, err := Encode(ElementPoints, []Input{
			ArrayForm{{4, 4}, {4, 4}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiPoint, col.Kind())
		assert.Equal(t, 2, col.At(0).NumVertices())
		assert.Equal(t, []float64{4, 4, 4, 4}, col.At(0).BufferValues())
	})

	t.Run("Multi", func(t *testing.T) {
		col, err := Encode(ElementPoints, []Input{
			DictForm{X: []float64{0, 1}, Y: []float64{1, 0}},
			DictForm{X: []float64{1, 2, 3}, Y: []float64{2, 0, 7}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiPoint, col.Kind())
		assert.Equal(t, [][]float64{{0, 1, 1, 0}, {1, 2, 2, 0, 3, 7}}, bufferValues(col))
	})

	t.Run("EscalatesWholeColumn", func(t *testing.T) {
		col, err := Encode(ElementPoints, []Input{
			ArrayForm{{0, 1}},
			ArrayForm{{1, 2}, {3, 4}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiPoint, col.Kind())
		assert.Equal(t, KindMultiPoint, col.At(0).Kind())
	})

	t.Run("SeparatorIgnored", func(t *testing.T) {
		col, err := Encode(ElementPoints, []Input{
			DictForm{X: []float64{1, nan, 2}, Y: []float64{1, nan, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1, 2, 2}, col.At(0).BufferValues())
		assert.Equal(t, 1, col.At(0).NumParts())
	})
}

func TestEncodePath(t *testing.T) {
	t.Run("Lines", func(t *testing.T) {
		col, err := Encode(ElementPath, []Input{
			DictForm{X: []float64{1, 2, 3}, Y: []float64{2, 0, 7}},
			DictForm{X: []float64{3, 2, 1}, Y: []float64{7, 0, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindLine, col.Kind())
		assert.Equal(t, [][]float64{{1, 2, 2, 0, 3, 7}, {3, 7, 2, 0, 1, 2}}, bufferValues(col))
	})

	t.Run("MultiLines", func(t *testing.T) {
		col, err := Encode(ElementPath, []Input{
			DictForm{X: []float64{1, 2, 3, nan, 6, 7, 3}, Y: []float64{2, 0, 7, nan, 7, 5, 2}},
			DictForm{X: []float64{3, 7, 6, nan, 3, 2, 1}, Y: []float64{2, 5, 7, nan, 7, 0, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiLine, col.Kind())
		assert.Equal(t, [][]float64{
			{1, 2, 2, 0, 3, 7, 6, 7, 7, 5, 3, 2},
			{3, 2, 7, 5, 6, 7, 3, 7, 2, 0, 1, 2},
		}, bufferValues(col))
		assert.Equal(t, []int{6, 12}, col.At(0).RingEnds())
		assert.Equal(t, []int{1, 2}, col.At(0).PartEnds())
	})

	t.Run("MixedPartsEscalate", func(t *testing.T) {
		col, err := Encode(ElementPath, []Input{
			ArrayForm{{1, 2}, {2, 0}},
			ArrayForm{{1, 2}, {2, 0}, {nan, nan}, {5, 5}, {6, 6}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiLine, col.Kind())
		assert.Equal(t, 1, col.At(0).NumParts())
		assert.Equal(t, 2, col.At(1).NumParts())
	})

	t.Run("EmptySegmentsDropped", func(t *testing.T) {
		col, err := Encode(ElementPath, []Input{
			ArrayForm{{nan, nan}, {1, 1}, {2, 2}, {nan, nan}, {nan, nan}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindLine, col.Kind())
		assert.Equal(t, []float64{1, 1, 2, 2}, col.At(0).BufferValues())
	})
}

func TestEncodePolygons(t *testing.T) {
	holes := [][][2]float64{
		{{1.5, 2}, {2, 3}, {1.6, 1.6}},
		{{2.1, 4.5}, {2.5, 5}, {2.3, 3.5}},
	}

	t.Run("WithHoles", func(t *testing.T) {
		col, err := Encode(ElementPolygons, []Input{
			DictForm{X: []float64{1, 2, 3}, Y: []float64{2, 0, 7}, Holes: [][][][2]float64{holes}},
			DictForm{X: []float64{3, 2, 1}, Y: []float64{7, 0, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindPolygon, col.Kind())
		assert.Equal(t, [][]float64{
			{1, 2, 2, 0, 3, 7, 1.5, 2, 2, 3, 1.6, 1.6, 2.1, 4.5, 2.5, 5, 2.3, 3.5},
			{1, 2, 2, 0, 3, 7},
		}, bufferValues(col))
		assert.Equal(t, 3, col.At(0).NumRings())
	})

	t.Run("MultiPolygons", func(t *testing.T) {
		col, err := Encode(ElementPolygons, []Input{
			DictForm{
				X:     []float64{1, 2, 3, nan, 6, 7, 3},
				Y:     []float64{2, 0, 7, nan, 7, 5, 2},
				Holes: [][][][2]float64{holes, {}},
			},
			DictForm{X: []float64{3, 7, 6, nan, 1, 2, 3}, Y: []float64{2, 5, 7, nan, 2, 0, 7}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindMultiPolygon, col.Kind())
		assert.Equal(t, [][]float64{
			{1, 2, 2, 0, 3, 7, 1.5, 2, 2, 3, 1.6, 1.6, 2.1, 4.5, 2.5, 5, 2.3, 3.5, 3, 2, 7, 5, 6, 7},
			{3, 2, 7, 5, 6, 7, 1, 2, 2, 0, 3, 7},
		}, bufferValues(col))
		assert.Equal(t, []int{3, 4}, col.At(0).PartEnds())
	})

	t.Run("HoleOrientation", func(t *testing.T) {
		ccwHole := [][2]float64{{1, 1}, {2, 1}, {2, 2}}
		v, err := EncodeRow(ElementPolygons, DictForm{
			X:     []float64{0, 4, 4, 0},
			Y:     []float64{0, 0, 4, 4},
			Holes: [][][][2]float64{{ccwHole}},
		})
		require.NoError(t, err)
		parts := v.Parts()
		require.Len(t, parts, 1)
		require.Len(t, parts[0], 2)
		assert.Greater(t, SignedArea(parts[0][0]), 0.0)
		assert.Less(t, SignedArea(parts[0][1]), 0.0)
	})

	t.Run("Empty", func(t *testing.T) {
		col, err := Encode(ElementPolygons, []Input{
			DictForm{},
			DictForm{X: []float64{0, 1, 1}, Y: []float64{0, 0, 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, KindPolygon, col.Kind())
		assert.True(t, col.At(0).IsEmpty())
		assert.Equal(t, 0, col.At(0).NumParts())
	})
}

func TestEncodeKindFloor(t *testing.T) {
	col, err := EncodeKind(KindMultiLine, []Input{ArrayForm{{0, 0}, {1, 1}}})
	require.NoError(t, err)
	assert.Equal(t, KindMultiLine, col.Kind())

	col, err = EncodeKind(KindPoint, []Input{ArrayForm{{0, 0}, {1, 1}}})
	require.NoError(t, err)
	assert.Equal(t, KindMultiPoint, col.Kind())
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		element Element
		input   Input
		target  error
	}{
		{"LengthMismatch", ElementPath, DictForm{X: []float64{1, 2}, Y: []float64{1}}, ErrMalformedGeometry},
		{"HolesOnPath", ElementPath, DictForm{X: []float64{1}, Y: []float64{1}, Holes: [][][][2]float64{{}}}, ErrMalformedGeometry},
		{"HolesOnPoints", ElementPoints, DictForm{X: []float64{1}, Y: []float64{1}, Holes: [][][][2]float64{{}}}, ErrMalformedGeometry},
		{"HalfNaN", ElementPath, ArrayForm{{1, 1}, {nan, 2}}, ErrMalformedGeometry},
		{"NaNInHole", ElementPolygons, DictForm{
			X: []float64{0, 1, 1}, Y: []float64{0, 0, 1},
			Holes: [][][][2]float64{{{{nan, nan}}}},
		}, ErrMalformedGeometry},
		{"HoleListCount", ElementPolygons, DictForm{
			X: []float64{0, 1, 1, nan, 5, 6, 6}, Y: []float64{0, 0, 1, nan, 5, 5, 6},
			Holes: [][][][2]float64{{}},
		}, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.element, []Input{ArrayForm{{0, 0}}, tt.input})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("RowIndex", func(t *testing.T) {
		_, err := Encode(ElementPath, []Input{ArrayForm{{0, 0}}, DictForm{X: []float64{1}}})
		var mErr *MalformedGeometryError
		require.True(t, errors.As(err, &mErr))
		assert.Equal(t, 1, mErr.Row)
	})

	t.Run("ShapeMismatchDetail", func(t *testing.T) {
		_, err := Encode(ElementPolygons, []Input{DictForm{
			X: []float64{0, 1, 1}, Y: []float64{0, 0, 1},
			Holes: [][][][2]float64{{}, {}},
		}})
		var sErr *ShapeMismatchError
		require.True(t, errors.As(err, &sErr))
		assert.Equal(t, 1, sErr.Parts)
		assert.Equal(t, 2, sErr.HoleLists)
	})

	t.Run("InvalidElement", func(t *testing.T) {
		_, err := Encode(ElementInvalid, nil)
		assert.Error(t, err)
	})
}

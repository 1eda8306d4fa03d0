package arrowcol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
)

const (
	// GeometryField is the name of the geometry column.
	GeometryField = "geometry"

	metaKind  = "geobuf.kind"
	metaKDims = "geobuf.kdims"
)

var (
	// ErrUnsupportedAttribute is returned for attribute columns with no Arrow
	// mapping, such as arrays or mixed kinds.
	ErrUnsupportedAttribute = errors.New("unsupported attribute column")

	// ErrInvalidRecord is returned when a record does not have the expected layout.
	ErrInvalidRecord = errors.New("invalid arrow record")
)

type options struct {
	alloc memory.Allocator
}

// Option configures record conversion.
type Option func(*options)

// WithAllocator sets the Arrow allocator. The default is memory.NewGoAllocator().
func WithAllocator(alloc memory.Allocator) Option {
	return func(o *options) {
		if alloc != nil {
			o.alloc = alloc
		}
	}
}

// depth returns the list nesting depth of kind.
func depth(k geometry.Kind) int {
	switch k {
	case geometry.KindMultiLine, geometry.KindPolygon:
		return 2
	case geometry.KindMultiPolygon:
		return 3
	default:
		return 1
	}
}

func geometryType(k geometry.Kind) arrow.DataType {
	var dt arrow.DataType = arrow.PrimitiveTypes.Float64
	for range depth(k) {
		dt = arrow.ListOf(dt)
	}
	return dt
}

// NewRecord converts ds into an Arrow record. The caller must Release it.
func NewRecord(ds *dataset.Dataset, opts ...Option) (arrow.Record, error) {
	o := options{alloc: memory.NewGoAllocator()}
	for _, opt := range opts {
		opt(&o)
	}

	kind := ds.Kind()
	kdims := ds.KDims()
	fields := []arrow.Field{{
		Name: GeometryField,
		Type: geometryType(kind),
		Metadata: arrow.NewMetadata(
			[]string{metaKind, metaKDims},
			[]string{kind.String(), kdims[0] + "," + kdims[1]},
		),
	}}

	geomArr, err := buildGeometry(o.alloc, ds.GeometryColumn())
	if err != nil {
		return nil, err
	}
	cols := []arrow.Array{geomArr}
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}

	for _, name := range ds.VDims() {
		values, err := ds.Attribute(name)
		if err != nil {
			release()
			return nil, err
		}
		arr, err := buildAttribute(o.alloc, values)
		if err != nil {
			release()
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		cols = append(cols, arr)
		fields = append(fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, cols, int64(ds.Len()))
	release()
	return rec, nil
}

func buildGeometry(alloc memory.Allocator, col *geometry.Column) (arrow.Array, error) {
	b := array.NewBuilder(alloc, geometryType(col.Kind())).(*array.ListBuilder)
	defer b.Release()

	for _, v := range col.Values() {
		b.Append(true)
		switch depth(col.Kind()) {
		case 1:
			coords := b.ValueBuilder().(*array.Float64Builder)
			coords.AppendValues(v.BufferValues(), nil)
		case 2:
			rings := b.ValueBuilder().(*array.ListBuilder)
			coords := rings.ValueBuilder().(*array.Float64Builder)
			for _, part := range v.Parts() {
				for _, ring := range part {
					rings.Append(true)
					appendRing(coords, ring)
				}
			}
		case 3:
			parts := b.ValueBuilder().(*array.ListBuilder)
			rings := parts.ValueBuilder().(*array.ListBuilder)
			coords := rings.ValueBuilder().(*array.Float64Builder)
			for _, part := range v.Parts() {
				parts.Append(true)
				for _, ring := range part {
					rings.Append(true)
					appendRing(coords, ring)
				}
			}
		}
	}
	return b.NewArray(), nil
}

func appendRing(b *array.Float64Builder, r geometry.Ring) {
	for _, p := range r {
		b.Append(p[0])
		b.Append(p[1])
	}
}

func buildAttribute(alloc memory.Allocator, values []attribute.Value) (arrow.Array, error) {
	switch attribute.InferFieldType(values) {
	case attribute.FieldTypeInt:
		b := array.NewInt64Builder(alloc)
		defer b.Release()
		for _, v := range values {
			if v.IsNull() {
				b.AppendNull()
				continue
			}
			b.Append(v.I64)
		}
		return b.NewArray(), nil
	case attribute.FieldTypeFloat:
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for _, v := range values {
			f, ok := v.AsNumber()
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(f)
		}
		return b.NewArray(), nil
	case attribute.FieldTypeString:
		b := array.NewStringBuilder(alloc)
		defer b.Release()
		for _, v := range values {
			if v.IsNull() {
				b.AppendNull()
				continue
			}
			b.Append(v.StringValue())
		}
		return b.NewArray(), nil
	case attribute.FieldTypeBool:
		b := array.NewBooleanBuilder(alloc)
		defer b.Release()
		for _, v := range values {
			if v.IsNull() {
				b.AppendNull()
				continue
			}
			b.Append(v.B)
		}
		return b.NewArray(), nil
	default:
		for _, v := range values {
			if !v.IsNull() {
				return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedAttribute, v.Kind)
			}
		}
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for range values {
			b.AppendNull()
		}
		return b.NewArray(), nil
	}
}

// ReadRecord converts a record written by NewRecord back into a dataset.
// Dataset options are applied after the dimensions read from the record.
func ReadRecord(rec arrow.Record, opts ...dataset.Option) (*dataset.Dataset, error) {
	schema := rec.Schema()
	if schema.NumFields() == 0 || schema.Field(0).Name != GeometryField {
		return nil, fmt.Errorf("%w: first field must be %q", ErrInvalidRecord, GeometryField)
	}
	gf := schema.Field(0)
	kindName, ok := gf.Metadata.GetValue(metaKind)
	if !ok {
		return nil, fmt.Errorf("%w: geometry field has no kind", ErrInvalidRecord)
	}
	kind, err := geometry.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	kdims := dataset.DefaultKDims
	if s, ok := gf.Metadata.GetValue(metaKDims); ok {
		if names := strings.Split(s, ","); len(names) == 2 {
			kdims = [2]string{names[0], names[1]}
		}
	}

	list, ok := rec.Column(0).(*array.List)
	if !ok || !arrow.TypeEqual(list.DataType(), geometryType(kind)) {
		return nil, fmt.Errorf("%w: geometry column type %s does not match kind %s", ErrInvalidRecord, rec.Column(0).DataType(), kind)
	}
	values, err := readGeometry(kind, list)
	if err != nil {
		return nil, err
	}
	col, err := geometry.NewColumn(kind, values)
	if err != nil {
		return nil, err
	}

	vdims := make([]string, 0, schema.NumFields()-1)
	attrs := make(map[string][]attribute.Value, schema.NumFields()-1)
	for j := 1; j < schema.NumFields(); j++ {
		name := schema.Field(j).Name
		values, err := readAttribute(rec.Column(j))
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		vdims = append(vdims, name)
		attrs[name] = values
	}

	base := []dataset.Option{
		dataset.WithKDims(kdims[0], kdims[1]),
		dataset.WithVDims(vdims...),
	}
	return dataset.FromColumn(col, attrs, append(base, opts...)...)
}

func readGeometry(kind geometry.Kind, list *array.List) ([]geometry.Value, error) {
	values := make([]geometry.Value, list.Len())
	for i := range values {
		var (
			coords   []float64
			ringEnds []int
			partEnds []int
		)
		if !list.IsNull(i) {
			start, end := list.ValueOffsets(i)
			switch depth(kind) {
			case 1:
				coords = append(coords, list.ListValues().(*array.Float64).Float64Values()[start:end]...)
				if len(coords) > 0 {
					ringEnds, partEnds = []int{len(coords)}, []int{1}
				}
			case 2:
				rings := list.ListValues().(*array.List)
				for r := start; r < end; r++ {
					coords = appendRingCoords(coords, rings, int(r))
					ringEnds = append(ringEnds, len(coords))
					if kind == geometry.KindMultiLine {
						partEnds = append(partEnds, len(ringEnds))
					}
				}
				if kind == geometry.KindPolygon && len(ringEnds) > 0 {
					partEnds = []int{len(ringEnds)}
				}
			case 3:
				parts := list.ListValues().(*array.List)
				rings := parts.ListValues().(*array.List)
				for p := start; p < end; p++ {
					rs, re := parts.ValueOffsets(int(p))
					for r := rs; r < re; r++ {
						coords = appendRingCoords(coords, rings, int(r))
						ringEnds = append(ringEnds, len(coords))
					}
					partEnds = append(partEnds, len(ringEnds))
				}
			}
		}
		v, err := geometry.NewValue(kind, coords, ringEnds, partEnds)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

func appendRingCoords(dst []float64, rings *array.List, r int) []float64 {
	start, end := rings.ValueOffsets(r)
	return append(dst, rings.ListValues().(*array.Float64).Float64Values()[start:end]...)
}

func readAttribute(arr arrow.Array) ([]attribute.Value, error) {
	values := make([]attribute.Value, arr.Len())
	for i := range values {
		if arr.IsNull(i) {
			values[i] = attribute.Null()
			continue
		}
		switch a := arr.(type) {
		case *array.Int64:
			values[i] = attribute.Int(a.Value(i))
		case *array.Float64:
			values[i] = attribute.Float(a.Value(i))
		case *array.String:
			values[i] = attribute.String(a.Value(i))
		case *array.Boolean:
			values[i] = attribute.Bool(a.Value(i))
		default:
			return nil, fmt.Errorf("%w: arrow type %s", ErrUnsupportedAttribute, arr.DataType())
		}
	}
	return values, nil
}

package dataset

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/geometry"
)

// Dataset is an immutable geometry column plus attribute columns.
// It is safe for concurrent reads.
type Dataset struct {
	element  geometry.Element
	datatype Datatype
	kdims    [2]string
	vdims    []string
	column   *geometry.Column
	records  []geometry.Output // only for MultiTabular
	attrs    map[string][]attribute.Value
	logger   *slog.Logger
}

// New encodes rows into a dataset. The element selects the geometry family;
// the column kind escalates to Multi- when any row needs it. Rows are always
// encoded, so malformed geometry fails here for both datatypes.
func New(element geometry.Element, rows []Row, opts ...Option) (*Dataset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := ParseDatatype(string(o.datatype)); err != nil {
		return nil, err
	}

	kind := element.Kind()
	if !kind.Valid() {
		return nil, fmt.Errorf("dataset: invalid element %s", element)
	}
	if o.kind != geometry.KindInvalid {
		if o.kind.Element() != element {
			return nil, fmt.Errorf("dataset: kind %s does not belong to element %s", o.kind, element)
		}
		kind = o.kind
	}

	inputs := make([]geometry.Input, len(rows))
	for i, r := range rows {
		inputs[i] = r.Geometry
	}
	col, err := geometry.EncodeKind(kind, inputs)
	if err != nil {
		return nil, err
	}

	docs := make([]attribute.Document, len(rows))
	for i, r := range rows {
		if err := o.schema.Validate(r.Attrs); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		docs[i] = r.Attrs
	}
	vdims, attrs, err := columnize(o, docs)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		element:  element,
		datatype: o.datatype,
		kdims:    o.kdims,
		vdims:    vdims,
		column:   col,
		attrs:    attrs,
		logger:   o.logger,
	}
	if o.datatype == MultiTabular {
		ds.records = make([]geometry.Output, len(inputs))
		for i, in := range inputs {
			ds.records[i] = outputFromInput(in)
		}
	}

	o.logger.Debug("dataset constructed",
		"element", element.String(),
		"kind", col.Kind().String(),
		"datatype", string(o.datatype),
		"rows", col.Len())
	return ds, nil
}

// FromColumn wraps an already encoded column and attribute columns. Every
// attribute column must have one value per geometry row.
func FromColumn(col *geometry.Column, attrs map[string][]attribute.Value, opts ...Option) (*Dataset, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := ParseDatatype(string(o.datatype)); err != nil {
		return nil, err
	}
	if col == nil || !col.Kind().Valid() {
		return nil, fmt.Errorf("dataset: invalid geometry column")
	}

	vdims := o.vdims
	if vdims == nil {
		vdims = slices.Sorted(maps.Keys(attrs))
	}
	if err := checkVDims(o.kdims, vdims); err != nil {
		return nil, err
	}
	columns := make(map[string][]attribute.Value, len(vdims))
	for _, name := range vdims {
		values, ok := attrs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if len(values) != col.Len() {
			return nil, fmt.Errorf("%w: attribute %q has %d values for %d rows", ErrInvalidColumn, name, len(values), col.Len())
		}
		for i, v := range values {
			if err := o.schema.Validate(attribute.Document{name: v}); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		columns[name] = slices.Clone(values)
	}

	ds := &Dataset{
		element:  col.Kind().Element(),
		datatype: o.datatype,
		kdims:    o.kdims,
		vdims:    vdims,
		column:   col,
		attrs:    columns,
		logger:   o.logger,
	}
	if o.datatype == MultiTabular {
		ds.records = col.Decode()
	}
	return ds, nil
}

func columnize(o options, docs []attribute.Document) ([]string, map[string][]attribute.Value, error) {
	vdims := o.vdims
	if vdims == nil {
		seen := make(map[string]struct{})
		for _, d := range docs {
			for k := range d {
				seen[k] = struct{}{}
			}
		}
		vdims = slices.Sorted(maps.Keys(seen))
	} else {
		allowed := make(map[string]struct{}, len(vdims))
		for _, name := range vdims {
			allowed[name] = struct{}{}
		}
		for i, d := range docs {
			for k := range d {
				if _, ok := allowed[k]; !ok {
					return nil, nil, fmt.Errorf("%w: row %d has undeclared attribute %q", ErrInvalidRow, i, k)
				}
			}
		}
	}
	if err := checkVDims(o.kdims, vdims); err != nil {
		return nil, nil, err
	}

	attrs := make(map[string][]attribute.Value, len(vdims))
	for _, name := range vdims {
		values := make([]attribute.Value, len(docs))
		for i, d := range docs {
			v, ok := d[name]
			if !ok {
				v = attribute.Null()
			}
			values[i] = v
		}
		attrs[name] = values
	}
	return vdims, attrs, nil
}

func checkVDims(kdims [2]string, vdims []string) error {
	seen := make(map[string]struct{}, len(vdims))
	for _, name := range vdims {
		if name == kdims[0] || name == kdims[1] || name == HolesKey {
			return fmt.Errorf("%w: attribute %q shadows a geometry dimension", ErrInvalidColumn, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate attribute %q", ErrInvalidColumn, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// outputFromInput keeps the row-oriented input as given, separators included.
func outputFromInput(in geometry.Input) geometry.Output {
	switch in := in.(type) {
	case geometry.ArrayForm:
		out := geometry.Output{X: make([]float64, len(in)), Y: make([]float64, len(in))}
		for i, p := range in {
			out.X[i], out.Y[i] = p[0], p[1]
		}
		return out
	case geometry.DictForm:
		out := geometry.Output{X: slices.Clone(in.X), Y: slices.Clone(in.Y)}
		if len(in.Holes) > 0 {
			out.Holes = cloneHoles(in.Holes)
		}
		if out.X == nil {
			out.X, out.Y = []float64{}, []float64{}
		}
		return out
	default:
		return geometry.Output{X: []float64{}, Y: []float64{}}
	}
}

// cloneHoles deep-copies a per part, per ring hole list.
func cloneHoles(holes [][][][2]float64) [][][][2]float64 {
	if holes == nil {
		return nil
	}
	out := make([][][][2]float64, len(holes))
	for i, part := range holes {
		if part == nil {
			continue
		}
		out[i] = make([][][2]float64, len(part))
		for j, ring := range part {
			out[i][j] = slices.Clone(ring)
		}
	}
	return out
}

// Element returns the geometry element of the dataset.
func (d *Dataset) Element() geometry.Element { return d.element }

// Datatype returns the storage datatype.
func (d *Dataset) Datatype() Datatype { return d.datatype }

// Kind returns the geometry column dtype.
func (d *Dataset) Kind() geometry.Kind { return d.column.Kind() }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.column.Len() }

// KDims returns the names of the two coordinate dimensions.
func (d *Dataset) KDims() [2]string { return d.kdims }

// VDims returns the attribute dimension names in column order.
func (d *Dataset) VDims() []string { return slices.Clone(d.vdims) }

// Dimensions returns all dimension names: coordinates first, then attributes.
// ILoc column positions index into this list.
func (d *Dataset) Dimensions() []string {
	return append([]string{d.kdims[0], d.kdims[1]}, d.vdims...)
}

// GeometryColumn returns the encoded geometry column.
func (d *Dataset) GeometryColumn() *geometry.Column { return d.column }

// GeometryAt returns the encoded geometry of row i.
func (d *Dataset) GeometryAt(i int) (geometry.Value, error) {
	if i < 0 || i >= d.Len() {
		return geometry.Value{}, fmt.Errorf("%w: %d of %d", ErrInvalidRow, i, d.Len())
	}
	return d.column.At(i), nil
}

// Attribute returns a copy of the named attribute column.
func (d *Dataset) Attribute(name string) ([]attribute.Value, error) {
	values, ok := d.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return slices.Clone(values), nil
}

// Record returns the row-oriented form of row i.
func (d *Dataset) Record(i int) (Record, error) {
	if i < 0 || i >= d.Len() {
		return Record{}, fmt.Errorf("%w: %d of %d", ErrInvalidRow, i, d.Len())
	}
	var out geometry.Output
	if d.datatype == MultiTabular {
		r := d.records[i]
		out = geometry.Output{X: slices.Clone(r.X), Y: slices.Clone(r.Y), Holes: cloneHoles(r.Holes)}
	} else {
		out = geometry.DecodeValue(d.column.At(i))
	}
	return Record{X: out.X, Y: out.Y, Holes: out.Holes, Attrs: d.rowAttrs(i)}, nil
}

// Records returns every row in row-oriented form. For a Spatial dataset the
// geometry is decoded from the buffer; for MultiTabular the stored records are
// returned as given.
func (d *Dataset) Records() []Record {
	out := make([]Record, d.Len())
	for i := range out {
		out[i], _ = d.Record(i)
	}
	return out
}

// Rows returns the records as Rows, ready to be passed to New again.
func (d *Dataset) Rows() []Row {
	records := d.Records()
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

func (d *Dataset) rowAttrs(i int) attribute.Document {
	if len(d.vdims) == 0 {
		return nil
	}
	doc := make(attribute.Document, len(d.vdims))
	for _, name := range d.vdims {
		doc[name] = d.attrs[name][i]
	}
	return doc
}

// Clone re-expresses the dataset in the given datatype. Converting to
// MultiTabular decodes the buffers; converting to Spatial encodes the stored
// records again with the current kind as the minimum kind.
func (d *Dataset) Clone(dt Datatype) (*Dataset, error) {
	if _, err := ParseDatatype(string(dt)); err != nil {
		return nil, err
	}

	out := *d
	out.vdims = slices.Clone(d.vdims)
	out.datatype = dt

	switch {
	case d.datatype == dt:
	case dt == MultiTabular:
		out.records = d.column.Decode()
	default:
		inputs := make([]geometry.Input, len(d.records))
		for i, r := range d.records {
			inputs[i] = r.Input()
		}
		col, err := geometry.EncodeKind(d.column.Kind(), inputs)
		if err != nil {
			return nil, err
		}
		out.column = col
		out.records = nil
	}

	d.logger.Debug("dataset cloned",
		"from", string(d.datatype),
		"to", string(dt),
		"kind", out.column.Kind().String(),
		"rows", out.column.Len())
	return &out, nil
}

// ILocRows selects rows by position, in the given order. The geometry kind
// of the result is the kind of d.
func (d *Dataset) ILocRows(rows ...int) (*Dataset, error) {
	for _, r := range rows {
		if r < 0 || r >= d.Len() {
			return nil, fmt.Errorf("%w: %d of %d", ErrInvalidRow, r, d.Len())
		}
	}

	out := *d
	out.vdims = slices.Clone(d.vdims)
	out.column = d.column.Select(rows)
	if d.records != nil {
		out.records = make([]geometry.Output, len(rows))
		for i, r := range rows {
			out.records[i] = d.records[r]
		}
	}
	out.attrs = make(map[string][]attribute.Value, len(d.attrs))
	for name, values := range d.attrs {
		sub := make([]attribute.Value, len(rows))
		for i, r := range rows {
			sub[i] = values[r]
		}
		out.attrs[name] = sub
	}
	return &out, nil
}

// ILoc returns the cell at a row and column position. Column positions follow
// Dimensions. A coordinate cell is only defined for Point columns; any other
// kind stores several vertices per cell and fails with a DataError.
func (d *Dataset) ILoc(row, col int) (attribute.Value, error) {
	if col < 0 || col >= 2+len(d.vdims) {
		return attribute.Value{}, fmt.Errorf("%w: %d of %d", ErrInvalidColumn, col, 2+len(d.vdims))
	}
	// A geometry cell of a non-point column is ambiguous whatever the row.
	if kind := d.column.Kind(); col < 2 && kind != geometry.KindPoint {
		return attribute.Value{}, &DataError{
			Op:     "iloc",
			Reason: fmt.Sprintf("cell (%d, %q) of a %s column holds more than one vertex", row, d.kdims[col], kind),
		}
	}
	if row < 0 || row >= d.Len() {
		return attribute.Value{}, fmt.Errorf("%w: %d of %d", ErrInvalidRow, row, d.Len())
	}
	if col >= 2 {
		return d.attrs[d.vdims[col-2]][row], nil
	}

	v := d.column.At(row)
	if v.IsEmpty() {
		return attribute.Null(), nil
	}
	return attribute.Float(v.FlatValues()[col]), nil
}

// Equal reports whether both datasets hold the same geometry and attributes.
// The storage datatype is not compared; NaN attribute values compare equal.
func (d *Dataset) Equal(o *Dataset) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.element != o.element || d.kdims != o.kdims || !slices.Equal(d.vdims, o.vdims) {
		return false
	}
	if !d.column.Equal(o.column) {
		return false
	}
	for _, name := range d.vdims {
		if !slices.EqualFunc(d.attrs[name], o.attrs[name], attribute.Value.Equal) {
			return false
		}
	}
	return true
}

package dataset

import (
	"fmt"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/codec"
	"github.com/hupe1980/geobuf/geometry"
)

type wireDataset struct {
	Element  string       `json:"element"`
	Kind     string       `json:"kind"`
	Datatype string       `json:"datatype"`
	KDims    [2]string    `json:"kdims"`
	VDims    []string     `json:"vdims,omitempty"`
	Records  []wireRecord `json:"records"`
}

type wireRecord struct {
	X     codec.Coords       `json:"x"`
	Y     codec.Coords       `json:"y"`
	Holes [][][][2]float64   `json:"holes,omitempty"`
	Attrs attribute.Document `json:"attrs,omitempty"`
}

// MarshalRecords encodes the dataset as exploded records with c. If c is nil,
// codec.Default is used. NaN part separators are written as null.
func (d *Dataset) MarshalRecords(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	w := wireDataset{
		Element:  d.element.String(),
		Kind:     d.column.Kind().String(),
		Datatype: string(d.datatype),
		KDims:    d.kdims,
		VDims:    d.vdims,
		Records:  make([]wireRecord, d.Len()),
	}
	for i, r := range d.Records() {
		w.Records[i] = wireRecord{X: r.X, Y: r.Y, Holes: r.Holes, Attrs: r.Attrs}
	}
	b, err := c.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal records with %s: %w", c.Name(), err)
	}
	return b, nil
}

// UnmarshalRecords decodes records written by MarshalRecords. The element,
// kind, datatype and dimensions stored in data are applied before opts.
func UnmarshalRecords(c codec.Codec, data []byte, opts ...Option) (*Dataset, error) {
	if c == nil {
		c = codec.Default
	}
	var w wireDataset
	if err := c.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal records with %s: %w", c.Name(), err)
	}

	element, err := geometry.ParseElement(w.Element)
	if err != nil {
		return nil, err
	}
	kind, err := geometry.ParseKind(w.Kind)
	if err != nil {
		return nil, err
	}
	dt, err := ParseDatatype(w.Datatype)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(w.Records))
	for i, r := range w.Records {
		rows[i] = Row{
			Geometry: geometry.DictForm{X: r.X, Y: r.Y, Holes: r.Holes},
			Attrs:    r.Attrs,
		}
	}

	base := []Option{
		WithKind(kind),
		WithDatatype(dt),
		WithKDims(w.KDims[0], w.KDims[1]),
		WithVDims(w.VDims...),
	}
	return New(element, rows, append(base, opts...)...)
}

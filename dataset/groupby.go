package dataset

import (
	"fmt"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/internal/bitmap"
)

// Group is the subset of rows sharing one attribute value.
type Group struct {
	Key     attribute.Value
	Dataset *Dataset
}

// GroupBy splits the dataset by the values of an attribute dimension. Groups
// come out in first-appearance order and keep the parent's geometry kind.
//
// Grouping by a coordinate dimension is a DataError. So is any grouping of a
// Multi- column that would put more than one row in a group, since the rows
// of a group cannot be merged into one flat geometry cell.
func (d *Dataset) GroupBy(dim string) ([]Group, error) {
	if dim == d.kdims[0] || dim == d.kdims[1] {
		return nil, &DataError{
			Op:     "groupby",
			Reason: fmt.Sprintf("cannot group by geometry dimension %q", dim),
		}
	}
	values, ok := d.attrs[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, dim)
	}

	index := bitmap.NewGroupIndex()
	keys := make(map[string]attribute.Value)
	for row, v := range values {
		k := v.Key()
		if _, seen := keys[k]; !seen {
			keys[k] = v
		}
		index.Add(k, uint32(row))
	}

	if kind := d.column.Kind(); kind.IsMulti() && index.MaxCardinality() > 1 {
		return nil, &DataError{
			Op:     "groupby",
			Reason: fmt.Sprintf("grouping %s geometries by %q would merge several rows into one cell", kind, dim),
		}
	}

	groups := make([]Group, 0, index.Len())
	for _, k := range index.Keys() {
		sub, err := d.ILocRows(index.Rows(k).Rows()...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{Key: keys[k], Dataset: sub})
	}

	d.logger.Debug("dataset grouped", "dim", dim, "groups", len(groups))
	return groups, nil
}

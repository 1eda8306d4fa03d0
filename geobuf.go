package geobuf

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/geobuf/blobstore"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
	"github.com/hupe1980/geobuf/persistence"
)

// NewPoints encodes dict-style rows with point semantics.
func NewPoints(rows []map[string]any, optFns ...Option) (*dataset.Dataset, error) {
	return newFromMaps(geometry.ElementPoints, rows, optFns)
}

// NewPath encodes dict-style rows with path semantics.
func NewPath(rows []map[string]any, optFns ...Option) (*dataset.Dataset, error) {
	return newFromMaps(geometry.ElementPath, rows, optFns)
}

// NewPolygons encodes dict-style rows with polygon semantics. Rows may carry
// a "holes" key with one hole list per part.
func NewPolygons(rows []map[string]any, optFns ...Option) (*dataset.Dataset, error) {
	return newFromMaps(geometry.ElementPolygons, rows, optFns)
}

func newFromMaps(element geometry.Element, maps []map[string]any, optFns []Option) (*dataset.Dataset, error) {
	o := applyOptions(optFns)

	rows := make([]dataset.Row, len(maps))
	for i, m := range maps {
		r, err := dataset.RowFromMap(m, o.kdims[0], o.kdims[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = r
	}
	return build(element, rows, o)
}

// New encodes rows with the given element semantics.
func New(element geometry.Element, rows []dataset.Row, optFns ...Option) (*dataset.Dataset, error) {
	return build(element, rows, applyOptions(optFns))
}

func build(element geometry.Element, rows []dataset.Row, o options) (*dataset.Dataset, error) {
	start := time.Now()
	ds, err := dataset.New(element, rows, o.datasetOptions()...)
	err = translateError(err)

	kind := geometry.KindInvalid
	if ds != nil {
		kind = ds.Kind()
	}
	o.metricsCollector.RecordEncode(len(rows), kind, time.Since(start), err)
	o.logger.LogEncode(context.Background(), element, len(rows), err)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Explode decodes ds into row-oriented records, one per geometry row.
func Explode(ds *dataset.Dataset, optFns ...Option) []dataset.Record {
	o := applyOptions(optFns)
	start := time.Now()
	records := ds.Records()
	o.metricsCollector.RecordDecode(len(records), time.Since(start))
	return records
}

// Save writes ds to store under name and returns the committed manifest.
func Save(ctx context.Context, store blobstore.BlobStore, name string, ds *dataset.Dataset, optFns ...Option) (*persistence.Manifest, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithKind(ds.Kind()).WithRows(ds.Len())

	start := time.Now()
	m, err := persistence.Save(ctx, store, name, ds, o.persistenceOptions()...)
	err = translateError(err)

	var written int64
	if m != nil {
		written = m.Bytes
	}
	o.metricsCollector.RecordSave(written, time.Since(start), err)
	logger.LogSave(ctx, name, written, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the dataset saved under name from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*dataset.Dataset, error) {
	o := applyOptions(optFns)

	start := time.Now()
	mgr := persistence.NewManager(store, o.persistenceOptions()...)
	ds, m, err := mgr.LoadWithManifest(ctx, name)
	err = translateError(err)

	var read int64
	var rows int
	if m != nil {
		read, rows = m.Bytes, m.Rows
	}
	o.metricsCollector.RecordLoad(read, time.Since(start), err)
	o.logger.LogLoad(ctx, name, rows, err)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

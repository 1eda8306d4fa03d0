package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/blobstore"
	"github.com/hupe1980/geobuf/codec"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
)

// ManifestVersion is the current manifest layout version.
const ManifestVersion = 1

// ErrInvalidManifest is returned when a manifest cannot be used to load a dataset.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes a persisted dataset. It is written last, so a dataset
// is visible only once all of its blobs are in place.
type Manifest struct {
	Version     int               `json:"version"`
	Element     string            `json:"element"`
	Kind        string            `json:"kind"`
	Datatype    string            `json:"datatype"`
	KDims       [2]string         `json:"kdims"`
	VDims       []string          `json:"vdims,omitempty"`
	Rows        int               `json:"rows"`
	Compression string            `json:"compression"`
	Codec       string            `json:"codec"`
	Geometry    string            `json:"geometry"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Bytes       int64             `json:"bytes"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ManifestName returns the blob name of the manifest of dataset name.
func ManifestName(name string) string { return name + "/manifest.json" }

func geometryName(name string) string { return name + "/geometry.gbuf" }

func attributeName(name string, i int) string { return fmt.Sprintf("%s/attr-%04d.gbuf", name, i) }

type options struct {
	compression Compression
	codec       codec.Codec
	logger      *slog.Logger
	concurrency int
	datasetOpts []dataset.Option
}

// Option configures Save and Load.
type Option func(*options)

// WithCompression sets the payload compression. The default is zstd.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCodec sets the manifest codec. The default is codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithConcurrency limits the number of blobs transferred at once. A value
// below 1 removes the limit.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = -1
		}
		o.concurrency = n
	}
}

// WithDatasetOptions passes options to the dataset built by Load, applied
// after the dimensions and datatype stored in the manifest.
func WithDatasetOptions(opts ...dataset.Option) Option {
	return func(o *options) { o.datasetOpts = append(o.datasetOpts, opts...) }
}

func defaultOptions() options {
	return options{
		compression: CompressionZstd,
		codec:       codec.Default,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 8,
	}
}

// Manager saves and loads datasets on one blob store.
// It is safe for concurrent use.
type Manager struct {
	store blobstore.BlobStore
	opts  options
}

// NewManager creates a manager for store.
func NewManager(store blobstore.BlobStore, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{store: store, opts: o}
}

// Store returns the underlying blob store.
func (pm *Manager) Store() blobstore.BlobStore { return pm.store }

// Save writes ds under name: one geometry blob, one blob per attribute
// column and finally the manifest. Blobs are written concurrently.
func (pm *Manager) Save(ctx context.Context, name string, ds *dataset.Dataset) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vdims := ds.VDims()
	m := &Manifest{
		Version:     ManifestVersion,
		Element:     ds.Element().String(),
		Kind:        ds.Kind().String(),
		Datatype:    string(ds.Datatype()),
		KDims:       ds.KDims(),
		VDims:       vdims,
		Rows:        ds.Len(),
		Compression: pm.opts.compression.String(),
		Codec:       pm.opts.codec.Name(),
		Geometry:    geometryName(name),
		CreatedAt:   time.Now().UTC(),
	}
	if len(vdims) > 0 {
		m.Attributes = make(map[string]string, len(vdims))
	}

	columns := make([][]attribute.Value, len(vdims))
	for i, dim := range vdims {
		values, err := ds.Attribute(dim)
		if err != nil {
			return nil, err
		}
		columns[i] = values
		m.Attributes[dim] = attributeName(name, i)
	}

	var written atomic.Int64
	put := func(ctx context.Context, blob string, write func(*bytes.Buffer) error) error {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return fmt.Errorf("encode %s: %w", blob, err)
		}
		if err := pm.store.Put(ctx, blob, buf.Bytes()); err != nil {
			return fmt.Errorf("put %s: %w", blob, err)
		}
		written.Add(int64(buf.Len()))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pm.opts.concurrency)

	col := ds.GeometryColumn()
	g.Go(func() error {
		return put(gctx, m.Geometry, func(buf *bytes.Buffer) error {
			_, err := WriteColumn(buf, col, pm.opts.compression)
			return err
		})
	})
	for i, dim := range vdims {
		blob, values := m.Attributes[dim], columns[i]
		g.Go(func() error {
			return put(gctx, blob, func(buf *bytes.Buffer) error {
				_, err := WriteAttribute(buf, values, pm.opts.compression)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		pm.opts.logger.Error("dataset save failed", "name", name, "error", err)
		return nil, fmt.Errorf("persistence: save %q: %w", name, err)
	}

	m.Bytes = written.Load()
	data, err := pm.opts.codec.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("persistence: marshal manifest: %w", err)
	}
	if err := pm.store.Put(ctx, ManifestName(name), data); err != nil {
		pm.opts.logger.Error("dataset save failed", "name", name, "error", err)
		return nil, fmt.Errorf("persistence: put manifest: %w", err)
	}

	pm.opts.logger.Info("dataset saved",
		"name", name,
		"kind", m.Kind,
		"rows", m.Rows,
		"bytes", m.Bytes,
		"compression", m.Compression)
	return m, nil
}

// ReadManifest reads the manifest of dataset name.
func (pm *Manager) ReadManifest(ctx context.Context, name string) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, pm.store, ManifestName(name))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := pm.opts.codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidManifest, m.Version)
	}
	if _, ok := codec.ByName(m.Codec); !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrInvalidManifest, m.Codec)
	}
	return &m, nil
}

// Load reads the dataset saved under name.
func (pm *Manager) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	ds, _, err := pm.LoadWithManifest(ctx, name)
	return ds, err
}

// LoadWithManifest is Load that also returns the manifest it read.
func (pm *Manager) LoadWithManifest(ctx context.Context, name string) (*dataset.Dataset, *Manifest, error) {
	m, err := pm.ReadManifest(ctx, name)
	if err != nil {
		pm.opts.logger.Error("dataset load failed", "name", name, "error", err)
		return nil, nil, fmt.Errorf("persistence: load %q: %w", name, err)
	}
	kind, err := geometry.ParseKind(m.Kind)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	dt, err := dataset.ParseDatatype(m.Datatype)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	var col *geometry.Column
	attrs := make([][]attribute.Value, len(m.VDims))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pm.opts.concurrency)
	g.Go(func() error {
		data, err := blobstore.ReadAll(gctx, pm.store, m.Geometry)
		if err != nil {
			return err
		}
		c, err := ReadColumn(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", m.Geometry, err)
		}
		col = c
		return nil
	})
	for i, dim := range m.VDims {
		blob, ok := m.Attributes[dim]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no blob for attribute %q", ErrInvalidManifest, dim)
		}
		g.Go(func() error {
			data, err := blobstore.ReadAll(gctx, pm.store, blob)
			if err != nil {
				return err
			}
			values, err := ReadAttribute(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", blob, err)
			}
			attrs[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		pm.opts.logger.Error("dataset load failed", "name", name, "error", err)
		return nil, nil, fmt.Errorf("persistence: load %q: %w", name, err)
	}

	if col.Kind() != kind || col.Len() != m.Rows {
		return nil, nil, fmt.Errorf("%w: geometry blob holds %d %s rows, manifest says %d %s",
			ErrInvalidManifest, col.Len(), col.Kind(), m.Rows, kind)
	}

	columns := make(map[string][]attribute.Value, len(m.VDims))
	for i, dim := range m.VDims {
		columns[dim] = attrs[i]
	}
	base := []dataset.Option{
		dataset.WithKDims(m.KDims[0], m.KDims[1]),
		dataset.WithVDims(m.VDims...),
		dataset.WithDatatype(dt),
		dataset.WithLogger(pm.opts.logger),
	}
	ds, err := dataset.FromColumn(col, columns, append(base, pm.opts.datasetOpts...)...)
	if err != nil {
		return nil, nil, err
	}

	pm.opts.logger.Info("dataset loaded", "name", name, "kind", m.Kind, "rows", m.Rows, "bytes", m.Bytes)
	return ds, m, nil
}

// Delete removes every blob of dataset name, manifest first.
func (pm *Manager) Delete(ctx context.Context, name string) error {
	if err := pm.store.Delete(ctx, ManifestName(name)); err != nil {
		return err
	}
	blobs, err := pm.store.List(ctx, name+"/")
	if err != nil {
		return err
	}
	for _, blob := range blobs {
		if err := pm.store.Delete(ctx, blob); err != nil {
			return err
		}
	}
	return nil
}

// Save writes ds to store under name. See Manager.Save.
func Save(ctx context.Context, store blobstore.BlobStore, name string, ds *dataset.Dataset, opts ...Option) (*Manifest, error) {
	return NewManager(store, opts...).Save(ctx, name, ds)
}

// Load reads the dataset saved under name from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*dataset.Dataset, error) {
	return NewManager(store, opts...).Load(ctx, name)
}

package geobuf

import (
	"log/slog"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/codec"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
	"github.com/hupe1980/geobuf/persistence"
)

type options struct {
	codec            codec.Codec
	compression      persistence.Compression
	metricsCollector MetricsCollector
	logger           *Logger
	schema           attribute.Schema
	kdims            [2]string
	vdims            []string
	datatype         dataset.Datatype // empty keeps the default or the persisted one
	kind             geometry.Kind
}

// Option configures constructors, Save and Load.
type Option func(*options)

// WithCodec configures the codec used for manifests.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression used by Save.
// The default is zstd. Load detects the compression from each blob.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geobuf.BasicMetricsCollector{}
//	ds, _ := geobuf.NewPolygons(rows, geobuf.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Rows: %d, Avg latency: %dns\n", stats.EncodeRows, stats.EncodeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geobuf.NewJSONLogger(slog.LevelInfo)
//	ds, _ := geobuf.Load(ctx, store, "parcels", geobuf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSchema validates row attributes against s.
func WithSchema(s attribute.Schema) Option {
	return func(o *options) {
		o.schema = s
	}
}

// WithKDims names the two coordinate dimensions. The default is "x", "y".
func WithKDims(x, y string) Option {
	return func(o *options) {
		o.kdims = [2]string{x, y}
	}
}

// WithVDims fixes the attribute dimensions and their order.
func WithVDims(names ...string) Option {
	return func(o *options) {
		o.vdims = append([]string(nil), names...)
	}
}

// WithDatatype selects the dataset datatype. On Load it overrides the
// datatype stored in the manifest.
func WithDatatype(dt dataset.Datatype) Option {
	return func(o *options) {
		o.datatype = dt
	}
}

// WithKind forces a Multi- column kind even when every row has one part.
func WithKind(k geometry.Kind) Option {
	return func(o *options) {
		o.kind = k
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      persistence.CompressionZstd,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		kdims:            dataset.DefaultKDims,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// datasetOptions returns the dataset options for construction.
func (o options) datasetOptions() []dataset.Option {
	opts := []dataset.Option{
		dataset.WithKDims(o.kdims[0], o.kdims[1]),
		dataset.WithLogger(o.logger.Logger),
	}
	if o.vdims != nil {
		opts = append(opts, dataset.WithVDims(o.vdims...))
	}
	if o.schema != nil {
		opts = append(opts, dataset.WithSchema(o.schema))
	}
	if o.datatype != "" {
		opts = append(opts, dataset.WithDatatype(o.datatype))
	}
	if o.kind != geometry.KindInvalid {
		opts = append(opts, dataset.WithKind(o.kind))
	}
	return opts
}

func (o options) persistenceOptions() []persistence.Option {
	opts := []persistence.Option{
		persistence.WithCompression(o.compression),
		persistence.WithCodec(o.codec),
		persistence.WithLogger(o.logger.Logger),
	}
	var dsOpts []dataset.Option
	if o.schema != nil {
		dsOpts = append(dsOpts, dataset.WithSchema(o.schema))
	}
	if o.datatype != "" {
		dsOpts = append(dsOpts, dataset.WithDatatype(o.datatype))
	}
	if len(dsOpts) > 0 {
		opts = append(opts, persistence.WithDatasetOptions(dsOpts...))
	}
	return opts
}

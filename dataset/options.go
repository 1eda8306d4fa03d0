package dataset

import (
	"log/slog"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/geometry"
)

// DefaultKDims are the default names of the two coordinate dimensions.
var DefaultKDims = [2]string{"x", "y"}

type options struct {
	kdims    [2]string
	vdims    []string
	schema   attribute.Schema
	datatype Datatype
	kind     geometry.Kind
	logger   *slog.Logger
}

// Option configures dataset construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		kdims:    DefaultKDims,
		datatype: Spatial,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithKDims names the two coordinate dimensions.
func WithKDims(x, y string) Option {
	return func(o *options) {
		o.kdims = [2]string{x, y}
	}
}

// WithVDims fixes the attribute dimensions and their order. Without it the
// attribute dimensions are the sorted union of all row attribute keys.
func WithVDims(names ...string) Option {
	return func(o *options) {
		o.vdims = append([]string(nil), names...)
	}
}

// WithSchema validates every row's attributes against s.
func WithSchema(s attribute.Schema) Option {
	return func(o *options) {
		o.schema = s
	}
}

// WithDatatype selects the storage datatype. The default is Spatial.
func WithDatatype(dt Datatype) Option {
	return func(o *options) {
		o.datatype = dt
	}
}

// WithKind sets the minimum geometry kind of the column. A Multi- kind keeps
// the column Multi- even when every row has a single part.
func WithKind(k geometry.Kind) Option {
	return func(o *options) {
		o.kind = k
	}
}

// WithLogger sets the logger for debug output. If nil is passed, logging is
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

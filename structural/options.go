package structural

import (
	"log/slog"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/config"
	"github.com/astrapi69/jobj-compare/property"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxDepth bounds deep comparison unless WithMaxDepth says otherwise.
const DefaultMaxDepth = config.DefaultMaxDepth

type options struct {
	accessor   property.Accessor
	ordering   compare.Ordering
	logger     *slog.Logger
	deep       bool
	maxDepth   int
	registerer prometheus.Registerer
}

// Option configures an Engine.
type Option func(*options)

// WithAccessor sets how properties are read. Nil keeps property.Default.
func WithAccessor(accessor property.Accessor) Option {
	return func(o *options) {
		if accessor != nil {
			o.accessor = accessor
		}
	}
}

// WithOrdering sets the ordering applied to property values and to whole
// values that have an order of their own. Nil keeps compare.NaturalOrder.
func WithOrdering(ordering compare.Ordering) Option {
	return func(o *options) {
		if ordering != nil {
			o.ordering = ordering
		}
	}
}

// WithLogger sets the logger. By default the engine logs through the slog
// default logger. Either way the context passed to the ...Context methods
// adds its logger.With values or mutes the output (see logger.For).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDeep toggles deep mode: nested records without an order of their own
// are compared property by property instead of failing. It is on by default.
func WithDeep(deep bool) Option {
	return func(o *options) {
		o.deep = deep
	}
}

// WithMaxDepth bounds deep comparison; non-positive values keep DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithRegisterer registers the engine's metrics on the given registerer.
// Without it the metrics are kept but not registered anywhere.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

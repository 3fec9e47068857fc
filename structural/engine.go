// Package structural compares two values of the same type property by
// property.
//
// Per-property results are signed integers produced by the configured
// ordering (natural ordering by default), with absent values sorting first.
// They are combined three ways: Equals stops at the first difference,
// CompareTo and CompareOnProperties add them up, and GetCompareToResult
// returns them all.
//
// The sum is not a lexicographic order: a difference in one property can be
// cancelled by a difference in another, so a zero sum does not imply
// equality. Use Equals for that.
package structural

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/astrapi69/jobj-compare/assert"
	"github.com/astrapi69/jobj-compare/comparators"
	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/config"
	"github.com/astrapi69/jobj-compare/errors"
	"github.com/astrapi69/jobj-compare/logger"
	"github.com/astrapi69/jobj-compare/property"
)

const (
	opEquals              = "equals"
	opCompareTo           = "compareTo"
	opCompareOnProperties = "compareOnProperties"
	opCompareOnProperty   = "compareOnProperty"
	opGetCompareToResult  = "getCompareToResult"
)

// Engine performs structural comparisons. It is immutable and safe for
// concurrent use.
type Engine struct {
	accessor property.Accessor
	ordering compare.Ordering
	logger   *slog.Logger
	deep     bool
	maxDepth int
	metrics  *metrics
}

// New creates an engine. Without options it reads properties with
// property.Default, orders them with compare.NaturalOrder and compares nested
// records deeply.
func New(opts ...Option) *Engine {
	o := options{
		accessor: property.Default,
		ordering: compare.NaturalOrder,
		deep:     true,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		accessor: o.accessor,
		ordering: o.ordering,
		logger:   o.logger,
		deep:     o.deep,
		maxDepth: o.maxDepth,
		metrics:  newMetrics(o.registerer),
	}
}

// NewFromConfig creates an engine from a configuration. Options are applied
// after the configuration and win over it.
func NewFromConfig(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ordering, err := cfg.Ordering()
	if err != nil {
		return nil, err
	}

	log, err := cfg.Logger(nil)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithAccessor(cfg.Accessor()),
		WithOrdering(ordering),
		WithDeep(cfg.Deep),
		WithMaxDepth(cfg.MaxDepth),
		WithLogger(log),
	}

	return New(append(base, opts...)...), nil
}

// Equals reports whether every property of src compares equal to the same
// property of tgt. Both must be present and of the same type. Values the
// ordering can handle as a whole, such as strings or time.Time, are equal
// when the ordering says so.
func (e *Engine) Equals(src, tgt any) (bool, error) {
	return e.EqualsContext(context.Background(), src, tgt)
}

// EqualsContext is Equals logging through the context (see logger.For).
func (e *Engine) EqualsContext(ctx context.Context, src, tgt any) (bool, error) {
	equal, err := e.equals(ctx, src, tgt)
	e.metrics.call(opEquals, err)

	return equal, err
}

func (e *Engine) equals(ctx context.Context, src, tgt any) (bool, error) {
	if err := sameTypePresent(src, tgt); err != nil {
		return false, err
	}

	result, err := compare.Try(e.ordering, src, tgt)
	if err == nil {
		return result == 0, nil
	}

	if !isRecord(src) {
		return false, err
	}

	names, err := e.accessor.Names(src)
	if err != nil {
		return false, err
	}

	for _, name := range names {
		result, err := e.compareOnProperty(ctx, src, tgt, name, 0)
		if err != nil {
			return false, err
		}

		if result != 0 {
			return false, nil
		}
	}

	return true, nil
}

// CompareTo orders src against tgt. Absent values sort first and two absent
// values are equal. Otherwise both must be of the same type; values the
// ordering can handle as a whole are compared directly, and anything else
// yields the sum of all per-property results.
func (e *Engine) CompareTo(src, tgt any) (int, error) {
	return e.CompareToContext(context.Background(), src, tgt)
}

// CompareToContext is CompareTo logging through the context.
func (e *Engine) CompareToContext(ctx context.Context, src, tgt any) (int, error) {
	result, err := e.compareTo(ctx, src, tgt, 0)
	e.metrics.call(opCompareTo, err)

	return result, err
}

func (e *Engine) compareTo(ctx context.Context, src, tgt any, depth int) (int, error) {
	if depth > e.maxDepth {
		return 0, fmt.Errorf("%w: %d levels comparing %s", errors.ErrDepthExceeded, e.maxDepth, property.TypeName(src))
	}

	if result, decided := compare.NullCheck(src, tgt); decided {
		return result, nil
	}

	if err := assert.SameType(src, tgt); err != nil {
		return 0, err
	}

	result, err := compare.Try(e.ordering, src, tgt)
	if err == nil {
		return result, nil
	}

	if !isRecord(src) {
		return 0, err
	}

	names, err := e.accessor.Names(src)
	if err != nil {
		return 0, err
	}

	return e.sum(ctx, src, tgt, names, depth)
}

// CompareOnProperties sums the per-property results of the named properties
// only. Both values must be present and of the same type; names that do not
// exist fail with errors.ErrNoSuchProperty.
func (e *Engine) CompareOnProperties(src, tgt any, names property.Names) (int, error) {
	return e.CompareOnPropertiesContext(context.Background(), src, tgt, names)
}

// CompareOnPropertiesContext is CompareOnProperties logging through the context.
func (e *Engine) CompareOnPropertiesContext(ctx context.Context, src, tgt any, names property.Names) (int, error) {
	result, err := e.compareOnProperties(ctx, src, tgt, names)
	e.metrics.call(opCompareOnProperties, err)

	return result, err
}

func (e *Engine) compareOnProperties(ctx context.Context, src, tgt any, names property.Names) (int, error) {
	if err := sameTypePresent(src, tgt); err != nil {
		return 0, err
	}

	return e.sum(ctx, src, tgt, names.Sorted(), 0)
}

// Compare is CompareOnProperties with the names given inline. Repeated names
// count once.
func (e *Engine) Compare(src, tgt any, names ...string) (int, error) {
	return e.CompareContext(context.Background(), src, tgt, names...)
}

// CompareContext is Compare logging through the context.
func (e *Engine) CompareContext(ctx context.Context, src, tgt any, names ...string) (int, error) {
	return e.CompareOnPropertiesContext(ctx, src, tgt, property.NewNames(names...))
}

// CompareOnProperty compares a single property. When either value of the
// property is absent the null rule decides; otherwise the ordering does. In
// deep mode, nested records the ordering cannot handle are compared with
// CompareTo.
func (e *Engine) CompareOnProperty(src, tgt any, name string) (int, error) {
	return e.CompareOnPropertyContext(context.Background(), src, tgt, name)
}

// CompareOnPropertyContext is CompareOnProperty logging through the context.
func (e *Engine) CompareOnPropertyContext(ctx context.Context, src, tgt any, name string) (int, error) {
	result, err := e.compareOnPropertyChecked(ctx, src, tgt, name)
	e.metrics.call(opCompareOnProperty, err)

	return result, err
}

func (e *Engine) compareOnPropertyChecked(ctx context.Context, src, tgt any, name string) (int, error) {
	if err := sameTypePresent(src, tgt); err != nil {
		return 0, err
	}

	return e.compareOnProperty(ctx, src, tgt, name, 0)
}

// GetCompareToResult returns the result of CompareOnProperty for every
// property of src. Both values must be present and of the same type.
func (e *Engine) GetCompareToResult(src, tgt any) (map[string]int, error) {
	return e.GetCompareToResultContext(context.Background(), src, tgt)
}

// GetCompareToResultContext is GetCompareToResult logging through the context.
func (e *Engine) GetCompareToResultContext(ctx context.Context, src, tgt any) (map[string]int, error) {
	results, err := e.getCompareToResult(ctx, src, tgt)
	e.metrics.call(opGetCompareToResult, err)

	return results, err
}

func (e *Engine) getCompareToResult(ctx context.Context, src, tgt any) (map[string]int, error) {
	if err := sameTypePresent(src, tgt); err != nil {
		return nil, err
	}

	names, err := e.accessor.Names(src)
	if err != nil {
		return nil, err
	}

	results := make(map[string]int, len(names))

	for _, name := range names {
		result, err := e.compareOnProperty(ctx, src, tgt, name, 0)
		if err != nil {
			return nil, err
		}

		results[name] = result
	}

	return results, nil
}

func (e *Engine) sum(ctx context.Context, src, tgt any, names []string, depth int) (int, error) {
	total := 0

	for _, name := range names {
		result, err := e.compareOnProperty(ctx, src, tgt, name, depth)
		if err != nil {
			return 0, err
		}

		total += result
	}

	return total, nil
}

func (e *Engine) compareOnProperty(ctx context.Context, src, tgt any, name string, depth int) (int, error) {
	byProperty := comparators.ByProperty[any](name,
		comparators.WithAccessor(e.accessor), comparators.WithOrdering(e.ordering))

	va, vb, err := byProperty.Values(src, tgt)
	if err != nil {
		return 0, e.propertyFailed(ctx, err, src, name)
	}

	if result, decided := compare.NullCheck(va, vb); decided {
		return result, nil
	}

	result, err := compare.Try(byProperty.Ordering(), va, vb)
	if err == nil {
		return result, nil
	}

	if e.deep && isRecord(va) && isRecord(vb) {
		result, err = e.compareTo(ctx, va, vb, depth+1)
	}

	if err != nil {
		return 0, e.propertyFailed(ctx, err, src, name)
	}

	return result, nil
}

// propertyFailed records a failed property comparison. Failures from nested
// records are recorded once, at the innermost property.
func (e *Engine) propertyFailed(ctx context.Context, err error, src any, name string) error {
	if len(logger.Attrs(err)) > 0 {
		return err
	}

	annotated := logger.AnnotateError(err, "type", property.TypeName(src), "property", name)

	e.metrics.propertyError(err)
	e.log(ctx).Debug("property comparison failed", "error", annotated)

	return annotated
}

func (e *Engine) log(ctx context.Context) *slog.Logger {
	return logger.For(ctx, e.logger)
}

func sameTypePresent(src, tgt any) error {
	if compare.IsAbsent(src) || compare.IsAbsent(tgt) || assert.SameType(src, tgt) != nil {
		return fmt.Errorf("%w: objects must be non-null and the same type, got %T and %T",
			errors.ErrInvalidArgument, src, tgt)
	}

	return nil
}

// isRecord reports whether v has properties of its own: a struct or a map
// with string keys, possibly behind pointers.
func isRecord(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return false
	}

	return t.Kind() == reflect.Struct || (t.Kind() == reflect.Map && t.Key().Kind() == reflect.String)
}

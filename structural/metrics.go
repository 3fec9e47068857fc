package structural

import (
	"github.com/astrapi69/jobj-compare/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the counters of one engine. Engines built without a
// registerer still count, they just are not exported anywhere. Engines sharing
// a registerer share the registered counters.
type metrics struct {
	// callsTotal counts engine operations.
	//
	// Labels:
	//   - operation: equals, compareTo, compareOnProperties, compareOnProperty or getCompareToResult.
	//   - has_error: "true" when the operation returned an error.
	//
	// Usage example in dashboards:
	//   - sum(rate(structural_compare_calls_total[5m])) by (operation)
	//   - structural_compare_calls_total{has_error="true"}
	callsTotal *prometheus.CounterVec

	// propertyErrorsTotal counts failed property comparisons by cause.
	//
	// Labels:
	//   - reason: no_such_property, illegal_access, invocation, not_orderable,
	//     depth_exceeded, invalid_argument or other.
	propertyErrorsTotal *prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	// Unregistered; register reuses counters already on the registerer.
	factory := promauto.With(nil)

	return &metrics{
		callsTotal: register(registerer, factory.NewCounterVec(prometheus.CounterOpts{
			Name: "structural_compare_calls_total",
			Help: "The total number of structural comparison operations",
		}, []string{"operation", "has_error"})),
		propertyErrorsTotal: register(registerer, factory.NewCounterVec(prometheus.CounterOpts{
			Name: "structural_property_errors_total",
			Help: "The total number of property comparisons that failed",
		}, []string{"reason"})),
	}
}

func register(registerer prometheus.Registerer, vec *prometheus.CounterVec) *prometheus.CounterVec {
	if registerer == nil {
		return vec
	}

	err := registerer.Register(vec)
	if err == nil {
		return vec
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}

	panic(err)
}

func (m *metrics) call(operation string, err error) {
	hasError := "false"
	if err != nil {
		hasError = "true"
	}

	m.callsTotal.WithLabelValues(operation, hasError).Inc()
}

func (m *metrics) propertyError(err error) {
	m.propertyErrorsTotal.WithLabelValues(reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, errors.ErrNoSuchProperty):
		return "no_such_property"
	case errors.Is(err, errors.ErrIllegalAccess):
		return "illegal_access"
	case errors.Is(err, errors.ErrInvocation):
		return "invocation"
	case errors.Is(err, errors.ErrNotOrderable):
		return "not_orderable"
	case errors.Is(err, errors.ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, errors.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "other"
	}
}

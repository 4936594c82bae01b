package decorator

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rise-and-shine/decorators/operation"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the collectors shared by every metrics wrapper built from it.
type Metrics struct {
	invocations *prometheus.CounterVec
	durations   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// that are already registered are reused, so several Metrics may share one
// registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decorators_operation_invocations_total",
			Help: "Number of operation invocations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
	durations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "decorators_operation_duration_seconds",
			Help:    "Operation invocation duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 10, 8),
		},
		[]string{"operation"},
	)

	var err error
	if invocations, err = register(reg, invocations); err != nil {
		return nil, err
	}
	if durations, err = register(reg, durations); err != nil {
		return nil, err
	}

	return &Metrics{invocations: invocations, durations: durations}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, errx.Wrap(err)
}

type MetricsWrapper[I operation.Input, R operation.Result] struct {
	metrics *Metrics
	next    operation.Operation[I, R]
}

// NewMetricsWrapper counts invocations by outcome and observes their duration.
func NewMetricsWrapper[I operation.Input, R operation.Result](m *Metrics) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &MetricsWrapper[I, R]{metrics: m, next: next}
	}
}

func (w *MetricsWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *MetricsWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := w.next.Execute(ctx, input)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	w.metrics.durations.WithLabelValues(w.next.Name()).Observe(time.Since(start).Seconds())
	w.metrics.invocations.WithLabelValues(w.next.Name(), outcome).Inc()

	return result, err
}

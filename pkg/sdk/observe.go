package salesgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/salesgate/internal/domain"
)

// Statuses recorded for calls that return an error. Seed records its
// SeedOutcome instead.
const (
	statusOK        = "ok"
	statusError     = "error"
	statusTimeout   = "timeout"
	statusMalformed = "malformed_aggregation"
)

// statusOf classifies a call result for the operations counter.
func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrMalformedAggregation):
		return statusMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout
	default:
		return statusError
	}
}

// clientMetrics are curried with the client's driver and collection, so
// several clients can share one registry.
type clientMetrics struct {
	calls    *prometheus.CounterVec // operation, status
	duration prometheus.ObserverVec // operation
}

func newClientMetrics(reg prometheus.Registerer, driver, collection string) (*clientMetrics, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesgate",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK calls by store driver, collection, operation and status.",
	}, []string{"driver", "collection", "operation", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salesgate",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK call latency by store driver, collection and operation.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"driver", "collection", "operation"})

	if err := registerOrReuse(reg, &calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &duration); err != nil {
		return nil, err
	}

	target := prometheus.Labels{"driver": driver, "collection": collection}
	curriedCalls, err := calls.CurryWith(target)
	if err != nil {
		return nil, fmt.Errorf("salesgate: curry operations_total: %w", err)
	}
	curriedDuration, err := duration.CurryWith(target)
	if err != nil {
		return nil, fmt.Errorf("salesgate: curry operation_duration_seconds: %w", err)
	}
	return &clientMetrics{calls: curriedCalls, duration: curriedDuration}, nil
}

// registerOrReuse registers c, or points c at the collector a previous
// client already registered under the same name.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("salesgate: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("salesgate: metric registered with a different type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts client calls. A nil observer records nothing.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(cfg *clientConfig) (*observer, error) {
	o := &observer{}
	if cfg.logger != nil {
		o.logger = cfg.logger.With(
			slog.String("driver", cfg.driver),
			slog.String("collection", cfg.collection),
		)
	}
	if cfg.metricsReg != nil {
		m, err := newClientMetrics(cfg.metricsReg, cfg.driver, cfg.collection)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// done records a call that returns an error.
func (o *observer) done(op string, start time.Time, err error) {
	o.record(op, start, statusOf(err), err)
}

// seeded records a Seed call under its outcome.
func (o *observer) seeded(start time.Time, outcome SeedOutcome) {
	o.record("seed", start, string(outcome), nil)
}

func (o *observer) record(op string, start time.Time, status string, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}

	attrs := []any{slog.String("op", op), slog.String("status", status), slog.Duration("elapsed", elapsed)}
	switch {
	case err != nil:
		o.logger.Warn("salesgate call failed", append(attrs, slog.Any("error", err))...)
	case op == "seed" && status == string(AlreadyInitialized):
		o.logger.Info("salesgate seed skipped", attrs...)
	default:
		o.logger.Debug("salesgate call done", attrs...)
	}
}

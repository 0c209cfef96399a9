package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Document store Prometheus metrics.
var (
	StoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesgate",
			Name:      "store_requests_total",
			Help:      "Total number of document store requests",
		},
		[]string{"driver", "op", "status"},
	)

	StoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salesgate",
			Name:      "store_request_duration_seconds",
			Help:      "Document store request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver", "op"},
	)

	SeedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salesgate",
			Name:      "seed_documents_total",
			Help:      "Sample documents inserted by the seed loader",
		},
	)
)

var registerOnce sync.Once

// Register registers all salesgate collectors with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			StoreRequestsTotal,
			StoreRequestDuration,
			SeedDocumentsTotal,
		)
	})
}

// ObserveStore records one store call.
func ObserveStore(driver, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreRequestsTotal.WithLabelValues(driver, op, status).Inc()
	StoreRequestDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
}

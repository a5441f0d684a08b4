package bundle

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus collectors for bundle fetches.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics registers the bundle collectors with the default registry.
// Registration happens once per process; later calls return the same set.
//
// Metrics:
//   - syw_bundle_fetch_total{channel,outcome} - fetch attempts per channel
//   - syw_bundle_fetch_duration_seconds{channel} - attempt latency
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			FetchTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "syw_bundle_fetch_total",
					Help: "Total number of bundle fetch attempts by channel and outcome",
				},
				[]string{"channel", "outcome"}, // outcome: "success" or "error"
			),
			FetchDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "syw_bundle_fetch_duration_seconds",
					Help:    "Duration of bundle fetch attempts",
					Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
				},
				[]string{"channel"},
			),
		}
	})
	return globalMetrics
}

// observe is safe on a nil receiver so the resolver works without metrics.
func (m *Metrics) observe(channel string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FetchTotal.WithLabelValues(channel, outcome).Inc()
	m.FetchDuration.WithLabelValues(channel).Observe(d.Seconds())
}

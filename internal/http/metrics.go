package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *HTTPMetrics
	metricsOnce   sync.Once
)

// HTTPMetrics holds Prometheus collectors for the viewer server.
type HTTPMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestDur     *prometheus.HistogramVec
	activeRequests prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP collectors once per process.
//
// Metrics:
//   - syw_http_requests_total{method,endpoint,status}
//   - syw_http_request_duration_seconds{method,endpoint}
//   - syw_http_active_requests
func NewHTTPMetrics() *HTTPMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &HTTPMetrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "syw_http_requests_total",
					Help: "Total HTTP requests by method, endpoint, and status code",
				},
				[]string{"method", "endpoint", "status"},
			),
			requestDur: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "syw_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
				},
				[]string{"method", "endpoint"},
			),
			activeRequests: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "syw_http_active_requests",
					Help: "Number of currently active HTTP requests",
				},
			),
		}
	})
	return globalMetrics
}

// MetricsMiddleware returns an Echo middleware that records HTTP metrics.
func (m *HTTPMetrics) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.activeRequests.Inc()
			defer m.activeRequests.Dec()

			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			endpoint := normalizePath(c.Path())
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(method, endpoint, status).Inc()
			m.requestDur.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// normalizePath keeps label cardinality bounded. c.Path() is already the
// route pattern (/api/v1/bundles/:id); unmatched requests have none.
func normalizePath(path string) string {
	if path == "" {
		return "unmatched"
	}
	return path
}

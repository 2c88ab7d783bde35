package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the Prometheus registry over HTTP. Operation counters
// and durations are recorded by the service package; the server adds
// request level metrics.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "seqcalc_http_active_requests",
		Help: "Current number of in-flight HTTP requests.",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seqcalc_http_requests_total",
		Help: "Total number of HTTP requests, by path and status code.",
	}, []string{"path", "code"})
)

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

// WritePrometheus writes metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks in-flight requests and counts completed ones.
// Unknown paths are counted under a single label.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rec.status == http.StatusNotFound {
			path = "other"
		}
		totalRequests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
	})
}

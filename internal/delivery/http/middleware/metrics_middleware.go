package middleware

import (
	"net/http"
	"strconv"
	"time"

	"appointment-scheduling-service/pkg/metrics"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	metrics *metrics.Collector
}

func NewMetricsMiddleware(metrics *metrics.Collector) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
	}
}

// Handle must be registered with mux.Router.Use so the matched route is known.
// Paths are labelled by route template to keep label cardinality bounded.
func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		m.metrics.InFlightGauge.Inc()
		defer m.metrics.InFlightGauge.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.Status())
		m.metrics.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.metrics.RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

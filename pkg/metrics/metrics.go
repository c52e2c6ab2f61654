package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers everything on its own registry, never the global default one.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	AppointmentsCreated prometheus.Counter
	ConflictsRejected   prometheus.Counter
	ValidationFailures  *prometheus.CounterVec
	StatusUpdates       *prometheus.CounterVec
	AppointmentsDeleted prometheus.Counter
	IDCollisions        prometheus.Counter
	IdempotentReplays   prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "appointments_created_total",
			Help:      "Total appointments accepted into the ledger.",
		}),

		ConflictsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "conflicts_rejected_total",
			Help:      "Create requests rejected because the doctor's slot was taken.",
		}),

		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "validation_failures_total",
			Help:      "Requests rejected by validation, by operation.",
		}, []string{"operation"}),

		StatusUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "status_updates_total",
			Help:      "Applied status updates by new status.",
		}, []string{"status"}),

		AppointmentsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "appointments_deleted_total",
			Help:      "Total appointments removed from the ledger.",
		}),

		IDCollisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "id_collisions_total",
			Help:      "Generated appointment ids that collided with an existing record. Alert if non-zero.",
		}),

		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "idempotent_replays_total",
			Help:      "Responses served from the idempotency store.",
		}),
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

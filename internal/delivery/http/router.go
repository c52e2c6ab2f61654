package http

import (
	"net/http"

	"appointment-scheduling-service/internal/delivery/http/handler"
	"appointment-scheduling-service/internal/delivery/http/middleware"
	"appointment-scheduling-service/pkg/metrics"
	"appointment-scheduling-service/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	appointmentHandler    *handler.AppointmentHandler
	auditLogHandler       *handler.AuditLogHandler
	loggingMiddleware     *middleware.LoggingMiddleware
	metricsMiddleware     *middleware.MetricsMiddleware
	idempotencyMiddleware *middleware.IdempotencyMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	metrics               *metrics.Collector
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	idempotencyMiddleware *middleware.IdempotencyMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metrics *metrics.Collector,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		appointmentHandler:    appointmentHandler,
		auditLogHandler:       auditLogHandler,
		loggingMiddleware:     loggingMiddleware,
		metricsMiddleware:     metricsMiddleware,
		idempotencyMiddleware: idempotencyMiddleware,
		corsMiddleware:        corsMiddleware,
		metrics:               metrics,
	}
}

func (r *Router) Setup() http.Handler {
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	// Prometheus scrape endpoint
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Appointment ledger
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.HandleFunc("", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	appointments.Handle("", r.idempotencyMiddleware.Handle(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS and request ids must see every request, including unmatched preflights
	return middleware.Chain(r.router,
		middleware.RequestID,
		r.loggingMiddleware.Handle,
		r.corsMiddleware.Handle,
	)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

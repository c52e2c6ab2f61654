package middleware

import (
	"net/http"
	"time"

	"appointment-scheduling-service/pkg/requestid"

	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	log *logrus.Logger
}

func NewLoggingMiddleware(log *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		log: log,
	}
}

func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		entry := m.log.WithFields(logrus.Fields{
			"request_id":  requestid.FromContext(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.Status(),
			"bytes":       rec.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if rec.Status() >= http.StatusInternalServerError {
			entry.Error("http request")
			return
		}
		entry.Info("http request")
	})
}

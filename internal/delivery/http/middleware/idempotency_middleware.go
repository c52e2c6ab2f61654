package middleware

import (
	"bytes"
	"net/http"
	"time"

	"appointment-scheduling-service/internal/service"
	"appointment-scheduling-service/pkg/metrics"
	"appointment-scheduling-service/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLength  = 255
)

type IdempotencyMiddleware struct {
	store   service.IdempotencyStore
	ttl     time.Duration
	log     *logrus.Logger
	metrics *metrics.Collector
}

func NewIdempotencyMiddleware(store service.IdempotencyStore, ttl time.Duration, log *logrus.Logger, metrics *metrics.Collector) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		store:   store,
		ttl:     ttl,
		log:     log,
		metrics: metrics,
	}
}

// bodyRecorder keeps a copy of everything written so it can be stored
type bodyRecorder struct {
	statusRecorder
	body bytes.Buffer
}

func (w *bodyRecorder) Write(p []byte) (int, error) {
	n, err := w.statusRecorder.Write(p)
	w.body.Write(p[:n])
	return n, err
}

// Handle replays the stored response for a repeated Idempotency-Key.
// Only 2xx responses are stored, so a rejected request can be retried with the same key.
// Store failures are logged and the request is served normally.
func (m *IdempotencyMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			response.Error(w, http.StatusBadRequest, "Idempotency-Key must be at most 255 characters", nil)
			return
		}

		scopedKey := r.Method + " " + r.URL.Path + " " + key

		stored, err := m.store.Get(r.Context(), scopedKey)
		if err != nil {
			m.log.Warnf("Failed to read idempotency key: %+v", err)
		}
		if stored != nil {
			m.metrics.IdempotentReplays.Inc()
			if stored.ContentType != "" {
				w.Header().Set("Content-Type", stored.ContentType)
			}
			w.Header().Set(IdempotentReplayedHeader, "true")
			w.WriteHeader(stored.StatusCode)
			w.Write(stored.Body)
			return
		}

		rec := &bodyRecorder{statusRecorder: statusRecorder{ResponseWriter: w}}
		next.ServeHTTP(rec, r)

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		resp := &service.IdempotentResponse{
			StatusCode:  status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := m.store.Save(r.Context(), scopedKey, resp, m.ttl); err != nil {
			m.log.Warnf("Failed to save idempotency key: %+v", err)
		}
	})
}

package middleware

import (
	"net/http"

	"appointment-scheduling-service/pkg/requestid"
)

// RequestID propagates the caller's X-Request-Id or assigns a new one
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}
		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithRequestID(r.Context(), id)))
	})
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/metrics"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID keeps an inbound X-Request-ID or mints a ULID, and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Observe records request count and latency per chi route pattern.
func Observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.ObserveHTTP(r.Method, route, strconv.Itoa(rec.status), started)

		if rec.status >= http.StatusInternalServerError {
			logger.Warn("http request served with server error", logger.Fields{
				"method":    r.Method,
				"route":     route,
				"status":    rec.status,
				"requestId": RequestIDFromContext(r.Context()),
			})
		}
	})
}

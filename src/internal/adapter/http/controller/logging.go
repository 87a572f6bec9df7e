package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/go-chi/chi/v5"
)

// requestFields identifies a request in every controller log line.
func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method":    r.Method,
		"path":      r.URL.Path,
		"requestId": middleware.RequestIDFromContext(r.Context()),
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			fields["route"] = pattern
		}
	}
	if customerID, ok := middleware.CustomerIDFromContext(r.Context()); ok {
		fields["customerId"] = customerID
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	if r.URL.RawQuery != "" {
		fields["query"] = r.URL.RawQuery
	}
	if payload != nil {
		fields["payload"] = logger.SanitizePayload(payload)
	}
	logger.Info("ledger api request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)
	logger.Info("ledger api response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	fields["kind"] = string(commons.KindOf(err))
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("ledger api request failed", err, fields)
}

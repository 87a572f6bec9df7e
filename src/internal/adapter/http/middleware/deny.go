package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

// deny ends the request with the standard envelope so clients parse auth
// failures the same way as service failures.
func deny(w http.ResponseWriter, r *http.Request, status int, message, reason string) {
	fields := logger.Fields{
		"method":    r.Method,
		"path":      r.URL.Path,
		"status":    status,
		"reason":    reason,
		"requestId": RequestIDFromContext(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("auth middleware misconfigured", nil, fields)
	} else {
		logger.Info("auth middleware rejected request", fields)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[struct{}](message, reason))
}

package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/go-chi/chi/v5"
)

var errMissingCaller = errors.New("request carries no authenticated customer")

// statusFor maps an error kind onto the HTTP status returned to clients.
func statusFor(err error) int {
	switch commons.KindOf(err) {
	case commons.KindValidation:
		return http.StatusBadRequest
	case commons.KindNotFound:
		return http.StatusNotFound
	case commons.KindUnauthorized:
		return http.StatusForbidden
	case commons.KindInvalidState, commons.KindDuplicateResource:
		return http.StatusConflict
	case commons.KindLimitExceeded, commons.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, okStatus int, response commons.Response[T], err error) {
	status := okStatus
	if err != nil {
		status = statusFor(err)
		logError(r, err, logger.Fields{"message": response.Message})
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func reject[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, err error) {
	logError(r, err, nil)
	response := commons.ErrorResponse[T](message, err.Error())
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func decodeBody[T any, R any](w http.ResponseWriter, r *http.Request, start time.Time) (T, bool) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		reject[R](w, r, start, http.StatusBadRequest, "invalid request body", err)
		return req, false
	}
	logRequest(r, req)
	return req, true
}

// callerID reads the customer set by the bearer-token middleware.
func callerID[R any](w http.ResponseWriter, r *http.Request, start time.Time) (int64, bool) {
	id, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		reject[R](w, r, start, http.StatusUnauthorized, "unauthorized", errMissingCaller)
		return 0, false
	}
	return id, true
}

func int64Param[R any](w http.ResponseWriter, r *http.Request, start time.Time, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		reject[R](w, r, start, http.StatusBadRequest, "validation failed", commons.Validationf("%s must be a positive number", name))
		return 0, false
	}
	return id, true
}

// pageRequest reads the optional page and size query values.
func pageRequest[R any](w http.ResponseWriter, r *http.Request, start time.Time) (commons.PageRequest, bool) {
	var page commons.PageRequest
	query := r.URL.Query()

	for name, target := range map[string]*int{"page": &page.Page, "size": &page.Size} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			reject[R](w, r, start, http.StatusBadRequest, "validation failed", commons.Validationf("%s must be a non-negative number", name))
			return commons.PageRequest{}, false
		}
		*target = value
	}
	return page.Normalize(), true
}

func wantsPage(r *http.Request) bool {
	query := r.URL.Query()
	return query.Has("page") || query.Has("size")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

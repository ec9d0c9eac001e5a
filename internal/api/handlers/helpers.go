package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/platform/obs"
	"medication-route-service/internal/ports"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode failed: method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain and port errors onto HTTP statuses.
// Unknown errors are logged and reported as 500 without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var vErr *domain.ValidationError
	var cErr *domain.ConfigurationError

	switch {
	case errors.As(err, &vErr):
		writeError(w, r, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &cErr):
		writeError(w, r, http.StatusBadRequest, cErr.Error())
	case errors.Is(err, ports.ErrDistributorNotFound):
		writeError(w, r, http.StatusNotFound, "distributor not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "route optimization timed out")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func isClientError(err error) bool {
	var vErr *domain.ValidationError
	var cErr *domain.ConfigurationError
	return errors.As(err, &vErr) || errors.As(err, &cErr) || errors.Is(err, ports.ErrDistributorNotFound)
}

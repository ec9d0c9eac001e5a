package handlers

import (
	"net/http"
)

// Health reports liveness only; the distributor store is not probed.
func Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "medication-route-service",
	})
}

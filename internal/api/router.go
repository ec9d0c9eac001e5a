package api

import (
	"medication-route-service/internal/api/handlers"
	"medication-route-service/internal/platform/metrics"
	"medication-route-service/internal/ports"
	"medication-route-service/internal/services"
	"net/http"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	directory ports.DistributorDirectory,
	svc *services.OptimizationService,
	defaults services.OptimizerConfig,
	planTimeout time.Duration,
) http.Handler {
	mux := http.NewServeMux()

	distributorHandler := &handlers.DistributorHandler{Directory: directory}
	planHandler := &handlers.PlanHandler{
		Directory: directory,
		Service:   svc,
		Defaults:  defaults,
		Timeout:   planTimeout,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distributors", distributorHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux)
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"medication-route-service/internal/api/dto"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/platform/metrics"
	"medication-route-service/internal/ports"
	"medication-route-service/internal/services"
	"net/http"
	"strings"
	"time"
)

const maxPlanBodyBytes = 1 << 20

type PlanHandler struct {
	Directory ports.DistributorDirectory
	Service   *services.OptimizationService
	Defaults  services.OptimizerConfig

	// Wall-clock bound for one optimization; zero means no bound.
	Timeout time.Duration
}

// Plan resolves the distributor, converts the request into typed stops and
// runs the optimizer. An infeasible route is a 200 response with feasible=false.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	svcReq, err := h.toPlanRequest(ctx, req)
	if err != nil {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeServiceError(w, r, "plan route", err)
		return
	}
	metrics.PlanPharmacies.Observe(float64(len(svcReq.Pharmacies)))

	start := time.Now()
	res, err := h.Service.Plan(ctx, svcReq)
	metrics.PlanDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		outcome := metrics.OutcomeError
		if isClientError(err) {
			outcome = metrics.OutcomeRejected
		}
		metrics.PlansTotal.WithLabelValues(outcome).Inc()
		writeServiceError(w, r, "plan route", err)
		return
	}

	metrics.PlanGenerations.Observe(float64(res.Generations))
	if res.Feasible {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeFeasible).Inc()
	} else {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeInfeasible).Inc()
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(res))
}

func (h *PlanHandler) toPlanRequest(ctx context.Context, req dto.PlanRequest) (services.PlanRequest, error) {
	var distributor domain.Stop
	switch {
	case req.Distributor.Stop != nil:
		s, err := toStop("distributor", *req.Distributor.Stop, "Distributor")
		if err != nil {
			return services.PlanRequest{}, err
		}
		distributor = s
	default:
		s, err := services.ResolveDistributor(ctx, h.Directory, req.Distributor.Name)
		if err != nil {
			return services.PlanRequest{}, err
		}
		distributor = s
	}

	pharmacies := make([]domain.Stop, 0, len(req.Pharmacies))
	for i, p := range req.Pharmacies {
		s, err := toStop(fmt.Sprintf("pharmacies[%d]", i), p, fmt.Sprintf("Pharmacy %d", i+1))
		if err != nil {
			return services.PlanRequest{}, err
		}
		pharmacies = append(pharmacies, s)
	}

	med, err := toMedication(req.Medication)
	if err != nil {
		return services.PlanRequest{}, err
	}

	return services.PlanRequest{
		Distributor: distributor,
		Pharmacies:  pharmacies,
		Medication:  med,
		Config:      applyOptions(h.Defaults, req.Options),
	}, nil
}

// toStop labels unnamed stops with fallback; bare coordinates are accepted.
func toStop(field string, s dto.StopRequest, fallback string) (domain.Stop, error) {
	if s.Lat == nil || s.Lon == nil {
		return domain.Stop{}, &domain.ValidationError{Field: field, Reason: "lat and lon are required"}
	}

	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = fallback
	}
	return domain.NewStop(name, *s.Lat, *s.Lon), nil
}

func toMedication(m dto.MedicationRequest) (domain.Medication, error) {
	if m.MaxDuration == nil {
		return domain.Medication{}, &domain.ValidationError{Field: "medication.max_duration", Reason: "is required"}
	}

	minutes := *m.MaxDuration
	switch strings.ToLower(strings.TrimSpace(m.DurationUnit)) {
	case "", "minutes", "min":
	case "hours", "h":
		minutes *= 60
	default:
		return domain.Medication{}, &domain.ValidationError{
			Field:  "medication.duration_unit",
			Reason: fmt.Sprintf("unsupported unit %q (use minutes or hours)", m.DurationUnit),
		}
	}

	return domain.Medication{Name: strings.TrimSpace(m.Name), MaxDurationMinutes: minutes}, nil
}

func applyOptions(cfg services.OptimizerConfig, o *dto.PlanOptions) services.OptimizerConfig {
	if o == nil {
		return cfg
	}
	if o.PopulationSize != nil {
		cfg.PopulationSize = *o.PopulationSize
	}
	if o.Generations != nil {
		cfg.Generations = *o.Generations
	}
	if o.MutationRate != nil {
		cfg.MutationRate = *o.MutationRate
	}
	if o.AverageSpeedKmh != nil {
		cfg.AverageSpeedKmh = *o.AverageSpeedKmh
	}
	if o.Elitism != nil {
		cfg.Elitism = *o.Elitism
	}
	if o.RoundTrip != nil {
		cfg.RoundTrip = *o.RoundTrip
	}
	if o.RandomSeed != nil {
		seed := *o.RandomSeed
		cfg.Seed = &seed
	}
	if o.StallGenerations != nil {
		cfg.StallGenerations = *o.StallGenerations
	}
	if o.SeedNearestNeighbor != nil {
		cfg.SeedNearestNeighbor = *o.SeedNearestNeighbor
	}
	return cfg
}

func toPlanResponse(res *services.PlanResult) dto.PlanResponse {
	stops := res.Route.Stops()
	route := make([]dto.RouteStopResponse, 0, len(stops))
	for _, s := range stops {
		route = append(route, dto.RouteStopResponse{Name: s.Label, Lat: s.Location.Lat, Lon: s.Location.Lon})
	}

	out := dto.PlanResponse{
		Medication:         res.Medication.Name,
		MaxDurationMinutes: res.Medication.MaxDurationMinutes,
		Route:              route,
		DistanceKm:         res.DistanceKm,
		TimeMinutes:        res.TimeMinutes,
		Feasible:           res.Feasible,
		Seed:               res.Seed,
		Generations:        res.Generations,
	}
	if !res.Feasible {
		out.Message = fmt.Sprintf(
			"no route satisfies the %.0f minute limit; the shortest route found takes %.1f minutes",
			res.Medication.MaxDurationMinutes, res.TimeMinutes,
		)
	}
	return out
}

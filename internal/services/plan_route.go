package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/platform/obs"
	"medication-route-service/internal/ports"
	"strings"
	"time"
)

// Second PCG word; the seed alone selects the sequence.
const pcgStream = 0x9e3779b97f4a7c15

type PlanRequest struct {
	Distributor domain.Stop
	Pharmacies  []domain.Stop
	Medication  domain.Medication
	Config      OptimizerConfig
}

type PlanResult struct {
	Route       domain.Itinerary
	Medication  domain.Medication
	DistanceKm  float64
	TimeMinutes float64
	Feasible    bool
	Generations int
	Seed        uint64
}

// OptimizationService is the entry point for planning a delivery route.
// Each Plan call builds its own optimizer and RNG, so one service may serve
// concurrent requests.
type OptimizationService struct {
	now func() time.Time
}

func NewOptimizationService() *OptimizationService {
	return &OptimizationService{now: time.Now}
}

// Plan validates the request and searches for the shortest route that keeps
// the medication within its maximum transit time. A route that cannot meet the
// constraint is still returned, with Feasible set to false.
func (s *OptimizationService) Plan(ctx context.Context, req PlanRequest) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "optimizer.Plan")(&err)

	if err := validatePlanRequest(req); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	seed := uint64(s.now().UnixNano())
	if req.Config.Seed != nil {
		seed = *req.Config.Seed
	}
	rng := rand.New(rand.NewPCG(seed, pcgStream))

	opt := NewGeneticOptimizer(req.Distributor, req.Pharmacies, req.Medication, req.Config, rng)
	res, err := opt.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	return &PlanResult{
		Route:       res.Best,
		Medication:  req.Medication,
		DistanceKm:  res.Best.TotalDistance(),
		TimeMinutes: res.Best.TotalTime(req.Config.AverageSpeedKmh),
		Feasible:    res.Feasible,
		Generations: res.Generations,
		Seed:        seed,
	}, nil
}

// ResolveDistributor looks up a distributor by name through the directory port.
func ResolveDistributor(ctx context.Context, dir ports.DistributorDirectory, name string) (domain.Stop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Stop{}, &domain.ValidationError{Field: "distributor", Reason: "name is required"}
	}
	if dir == nil {
		return domain.Stop{}, errors.New("resolve distributor: directory is nil")
	}

	stop, err := dir.FindDistributor(ctx, name)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("resolve distributor %q: %w", name, err)
	}
	return stop, nil
}

func validatePlanRequest(req PlanRequest) error {
	if err := validateStop("distributor", req.Distributor); err != nil {
		return err
	}

	if len(req.Pharmacies) == 0 {
		return &domain.ValidationError{Field: "pharmacies", Reason: "at least one pharmacy is required"}
	}

	labels := map[string]struct{}{req.Distributor.Label: {}}
	for i, p := range req.Pharmacies {
		field := fmt.Sprintf("pharmacies[%d]", i)
		if err := validateStop(field, p); err != nil {
			return err
		}
		if _, dup := labels[p.Label]; dup {
			return &domain.ValidationError{Field: field, Reason: fmt.Sprintf("duplicate stop label %q", p.Label)}
		}
		labels[p.Label] = struct{}{}
	}

	// Zero is accepted: it is a constraint no real route can meet, reported as infeasible.
	d := req.Medication.MaxDurationMinutes
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return &domain.ValidationError{Field: "medication.max_duration_minutes", Reason: "must be a non-negative number"}
	}

	return nil
}

func validateStop(field string, s domain.Stop) error {
	if strings.TrimSpace(s.Label) == "" {
		return &domain.ValidationError{Field: field, Reason: "label is required"}
	}
	if !s.Location.Valid() {
		return &domain.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("coordinates (%v, %v) out of range", s.Location.Lat, s.Location.Lon),
		}
	}
	return nil
}

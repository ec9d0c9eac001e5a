package services

import (
	"context"
	"errors"
	"math"
	"medication-route-service/internal/adapters/repositories"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/ports"
	"slices"
	"testing"
)

func seeded(cfg OptimizerConfig, seed uint64) OptimizerConfig {
	cfg.Seed = &seed
	return cfg
}

func equatorRequest(maxMinutes float64) PlanRequest {
	return PlanRequest{
		Distributor: domain.NewStop("Distribuidor", 0, 0),
		Pharmacies: []domain.Stop{
			domain.NewStop("B", 0, 2),
			domain.NewStop("A", 0, 1),
		},
		Medication: domain.Medication{Name: "Insulina", MaxDurationMinutes: maxMinutes},
		Config:     seeded(DefaultOptimizerConfig(), 1),
	}
}

func TestPlanFindsMonotonicRouteAlongEquator(t *testing.T) {
	res, err := NewOptimizationService().Plan(context.Background(), equatorRequest(1_000_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Route.Labels(); !slices.Equal(got, []string{"Distribuidor", "A", "B"}) {
		t.Fatalf("route = %v, want [Distribuidor A B]", got)
	}
	if math.Abs(res.DistanceKm-222.39) > 0.05 {
		t.Fatalf("distance = %v, want ~222.4", res.DistanceKm)
	}
	if math.Abs(res.TimeMinutes-res.DistanceKm/50*60) > 1e-9 {
		t.Fatalf("time = %v, want distance/50*60", res.TimeMinutes)
	}
	if !res.Feasible {
		t.Fatal("expected feasible route")
	}
	if res.Seed != 1 {
		t.Fatalf("seed = %d, want 1", res.Seed)
	}
}

func TestPlanReportsInfeasibleWithoutError(t *testing.T) {
	for _, maxMinutes := range []float64{1, 0} {
		res, err := NewOptimizationService().Plan(context.Background(), equatorRequest(maxMinutes))
		if err != nil {
			t.Fatalf("max=%v: unexpected error: %v", maxMinutes, err)
		}
		if res.Feasible {
			t.Fatalf("max=%v: expected infeasible result", maxMinutes)
		}
		if res.Route.Len() != 3 {
			t.Fatalf("max=%v: route = %v, want a full route", maxMinutes, res.Route.Labels())
		}
		// The least bad route is still the shortest one.
		if got := res.Route.Labels(); !slices.Equal(got, []string{"Distribuidor", "A", "B"}) {
			t.Fatalf("max=%v: route = %v, want least-bad [Distribuidor A B]", maxMinutes, got)
		}
	}
}

func TestPlanRoundTripAddsReturnLeg(t *testing.T) {
	req := equatorRequest(1_000_000)
	req.Config.RoundTrip = true

	res, err := NewOptimizationService().Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Route.Len() != 4 || res.Route.At(3).Label != "Distribuidor" {
		t.Fatalf("route = %v, want return to distributor", res.Route.Labels())
	}
	if math.Abs(res.DistanceKm-444.78) > 0.1 {
		t.Fatalf("distance = %v, want ~444.8", res.DistanceKm)
	}
}

func TestPlanSpeedIsConfigurable(t *testing.T) {
	slow := equatorRequest(1_000_000)
	slow.Config.AverageSpeedKmh = 25
	fast := equatorRequest(1_000_000)

	rs, err := NewOptimizationService().Plan(context.Background(), slow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rf, err := NewOptimizationService().Plan(context.Background(), fast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(rs.TimeMinutes-2*rf.TimeMinutes) > 1e-9 {
		t.Fatalf("time at 25km/h = %v, want twice %v", rs.TimeMinutes, rf.TimeMinutes)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	req := PlanRequest{
		Distributor: hub,
		Pharmacies:  scatteredPharmacies(),
		Medication:  domain.Medication{Name: "Vacuna", MaxDurationMinutes: 180},
		Config:      seeded(DefaultOptimizerConfig(), 99),
	}

	svc := NewOptimizationService()
	first, err := svc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(first.Route.Labels(), second.Route.Labels()) {
		t.Fatalf("routes differ: %v vs %v", first.Route.Labels(), second.Route.Labels())
	}
	if first.DistanceKm != second.DistanceKm || first.TimeMinutes != second.TimeMinutes {
		t.Fatalf("metrics differ: %v/%v vs %v/%v", first.DistanceKm, first.TimeMinutes, second.DistanceKm, second.TimeMinutes)
	}
}

func TestPlanSinglePharmacy(t *testing.T) {
	req := equatorRequest(1_000_000)
	req.Pharmacies = req.Pharmacies[1:]

	res, err := NewOptimizationService().Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Route.Labels(); !slices.Equal(got, []string{"Distribuidor", "A"}) {
		t.Fatalf("route = %v, want [Distribuidor A]", got)
	}
}

func TestPlanValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanRequest)
		field  string
	}{
		{"no pharmacies", func(r *PlanRequest) { r.Pharmacies = nil }, "pharmacies"},
		{"distributor out of range", func(r *PlanRequest) { r.Distributor.Location.Lat = 91 }, "distributor"},
		{"pharmacy out of range", func(r *PlanRequest) { r.Pharmacies[1].Location.Lon = -181 }, "pharmacies[1]"},
		{"duplicate label", func(r *PlanRequest) { r.Pharmacies[1].Label = "B" }, "pharmacies[1]"},
		{"pharmacy named like distributor", func(r *PlanRequest) { r.Pharmacies[0].Label = "Distribuidor" }, "pharmacies[0]"},
		{"empty label", func(r *PlanRequest) { r.Pharmacies[0].Label = " " }, "pharmacies[0]"},
		{"negative duration", func(r *PlanRequest) { r.Medication.MaxDurationMinutes = -5 }, "medication.max_duration_minutes"},
		{"NaN duration", func(r *PlanRequest) { r.Medication.MaxDurationMinutes = math.NaN() }, "medication.max_duration_minutes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := equatorRequest(60)
			tc.mutate(&req)

			_, err := NewOptimizationService().Plan(context.Background(), req)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", vErr.Field, tc.field)
			}
		})
	}
}

func TestPlanConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OptimizerConfig)
		field  string
	}{
		{"population", func(c *OptimizerConfig) { c.PopulationSize = 0 }, "population_size"},
		{"generations", func(c *OptimizerConfig) { c.Generations = 0 }, "generations"},
		{"mutation above one", func(c *OptimizerConfig) { c.MutationRate = 1.5 }, "mutation_rate"},
		{"mutation negative", func(c *OptimizerConfig) { c.MutationRate = -0.1 }, "mutation_rate"},
		{"speed", func(c *OptimizerConfig) { c.AverageSpeedKmh = 0 }, "average_speed_kmh"},
		{"stall", func(c *OptimizerConfig) { c.StallGenerations = -1 }, "stall_generations"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := equatorRequest(60)
			tc.mutate(&req.Config)

			_, err := NewOptimizationService().Plan(context.Background(), req)
			var cErr *domain.ConfigurationError
			if !errors.As(err, &cErr) {
				t.Fatalf("err = %v, want ConfigurationError", err)
			}
			if cErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", cErr.Field, tc.field)
			}
		})
	}
}

func TestResolveDistributor(t *testing.T) {
	dir := repositories.NewMemoryDistributorDirectory([]domain.Stop{
		domain.NewStop("Distribuidora Guadalajara", 20.6597, -103.3496),
	})

	stop, err := ResolveDistributor(context.Background(), dir, "  Distribuidora Guadalajara ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stop.Location.Lat != 20.6597 {
		t.Fatalf("lat = %v, want 20.6597", stop.Location.Lat)
	}

	_, err = ResolveDistributor(context.Background(), dir, "Distribuidora Monterrey")
	if !errors.Is(err, ports.ErrDistributorNotFound) {
		t.Fatalf("err = %v, want ErrDistributorNotFound", err)
	}

	_, err = ResolveDistributor(context.Background(), dir, "")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

package services

import (
	"math"
	"medication-route-service/internal/domain"
	"testing"
)

func TestFitnessEvaluatorEvaluate(t *testing.T) {
	origin := domain.NewStop("HUB", 0, 0)
	a := domain.NewStop("A", 0, 1)
	b := domain.NewStop("B", 0, 2)
	pharmacies := []domain.Stop{a, b}

	ev := NewFitnessEvaluator(origin, pharmacies, 50, false)
	relaxed := domain.Medication{Name: "Amoxicilina", MaxDurationMinutes: 1_000_000}
	strict := domain.Medication{Name: "Insulina", MaxDurationMinutes: 1}

	tests := []struct {
		name         string
		stops        []domain.Stop
		med          domain.Medication
		wantValid    bool
		wantFeasible bool
	}{
		{"feasible", []domain.Stop{origin, a, b}, relaxed, true, true},
		{"over duration", []domain.Stop{origin, a, b}, strict, true, false},
		{"missing pharmacy", []domain.Stop{origin, a}, relaxed, false, false},
		{"duplicate pharmacy", []domain.Stop{origin, a, a}, relaxed, false, false},
		{"no distributor anchor", []domain.Stop{a, origin, b}, relaxed, false, false},
		{"unknown stop", []domain.Stop{origin, a, domain.NewStop("Z", 1, 1)}, relaxed, false, false},
		{"unexpected return leg", []domain.Stop{origin, a, b, origin}, relaxed, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := ev.Evaluate(domain.NewItinerary(tc.stops), tc.med)
			if f.Valid != tc.wantValid || f.Feasible != tc.wantFeasible {
				t.Fatalf("fitness = %+v, want valid=%v feasible=%v", f, tc.wantValid, tc.wantFeasible)
			}
			if !tc.wantFeasible && !math.IsInf(f.Value(), 1) {
				t.Fatalf("value = %v, want +Inf", f.Value())
			}
		})
	}
}

func TestFitnessEvaluatorRoundTrip(t *testing.T) {
	origin := domain.NewStop("HUB", 0, 0)
	a := domain.NewStop("A", 0, 1)
	ev := NewFitnessEvaluator(origin, []domain.Stop{a}, 50, true)
	med := domain.Medication{MaxDurationMinutes: 1_000_000}

	if f := ev.Evaluate(domain.NewItinerary([]domain.Stop{origin, a}), med); f.Valid {
		t.Fatalf("one-way route accepted in round-trip mode: %+v", f)
	}

	f := ev.Evaluate(domain.NewItinerary([]domain.Stop{origin, a, origin}), med)
	if !f.Valid || !f.Feasible {
		t.Fatalf("fitness = %+v, want valid feasible", f)
	}
	want := 2 * domain.Distance(origin.Location, a.Location)
	if math.Abs(f.DistanceKm-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", f.DistanceKm, want)
	}
}

func TestFitnessOrdering(t *testing.T) {
	feasibleShort := Fitness{Valid: true, Feasible: true, DistanceKm: 10, TimeMinutes: 12}
	feasibleLong := Fitness{Valid: true, Feasible: true, DistanceKm: 5000, TimeMinutes: 6000}
	infeasibleNear := Fitness{Valid: true, DistanceKm: 3, TimeMinutes: 61}
	infeasibleFar := Fitness{Valid: true, DistanceKm: 300, TimeMinutes: 600}
	invalid := worstFitness()

	ordered := []Fitness{feasibleShort, feasibleLong, infeasibleNear, infeasibleFar, invalid}
	for i := range ordered {
		for j := range ordered {
			if got := ordered[i].Less(ordered[j]); got != (i < j) {
				t.Errorf("%+v.Less(%+v) = %v, want %v", ordered[i], ordered[j], got, i < j)
			}
		}
	}
}

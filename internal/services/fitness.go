package services

import (
	"math"
	"medication-route-service/internal/domain"
)

// Fitness is the comparable score of one itinerary. Lower is better.
//
// Ordering: every feasible score beats every infeasible one, and every
// infeasible score beats a structurally invalid one. Feasible scores compare by
// distance; infeasible scores compare by travel time so the least bad route can
// still be reported.
type Fitness struct {
	Valid       bool
	Feasible    bool
	DistanceKm  float64
	TimeMinutes float64
}

func worstFitness() Fitness {
	return Fitness{DistanceKm: math.Inf(1), TimeMinutes: math.Inf(1)}
}

func (f Fitness) rank() int {
	switch {
	case f.Valid && f.Feasible:
		return 0
	case f.Valid:
		return 1
	default:
		return 2
	}
}

// Cost is the value compared within a rank.
func (f Fitness) Cost() float64 {
	switch f.rank() {
	case 0:
		return f.DistanceKm
	case 1:
		return f.TimeMinutes
	default:
		return math.Inf(1)
	}
}

// Value collapses the score to a scalar: the distance for feasible routes, +Inf otherwise.
func (f Fitness) Value() float64 {
	if f.rank() == 0 {
		return f.DistanceKm
	}
	return math.Inf(1)
}

func (f Fitness) Less(o Fitness) bool {
	if f.rank() != o.rank() {
		return f.rank() < o.rank()
	}
	return f.Cost() < o.Cost()
}

// FitnessEvaluator scores itineraries for one planning problem.
type FitnessEvaluator struct {
	distributor     domain.Stop
	pharmacies      map[string]struct{}
	roundTrip       bool
	averageSpeedKmh float64
}

func NewFitnessEvaluator(
	distributor domain.Stop,
	pharmacies []domain.Stop,
	averageSpeedKmh float64,
	roundTrip bool,
) *FitnessEvaluator {
	set := make(map[string]struct{}, len(pharmacies))
	for _, p := range pharmacies {
		set[p.Label] = struct{}{}
	}

	return &FitnessEvaluator{
		distributor:     distributor,
		pharmacies:      set,
		roundTrip:       roundTrip,
		averageSpeedKmh: averageSpeedKmh,
	}
}

// ExpectedLen is the stop count of a well-formed itinerary.
func (e *FitnessEvaluator) ExpectedLen() int {
	if e.roundTrip {
		return len(e.pharmacies) + 2
	}
	return len(e.pharmacies) + 1
}

// WellFormed reports whether it starts at the distributor, visits every pharmacy
// exactly once and, in round-trip mode, ends at the distributor.
func (e *FitnessEvaluator) WellFormed(it domain.Itinerary) bool {
	if it.Len() != e.ExpectedLen() {
		return false
	}
	if it.At(0) != e.distributor {
		return false
	}

	last := it.Len()
	if e.roundTrip {
		last--
		if it.At(last) != e.distributor {
			return false
		}
	}

	seen := make(map[string]struct{}, len(e.pharmacies))
	for i := 1; i < last; i++ {
		label := it.At(i).Label
		if _, ok := e.pharmacies[label]; !ok {
			return false
		}
		if _, dup := seen[label]; dup {
			return false
		}
		seen[label] = struct{}{}
	}

	return len(seen) == len(e.pharmacies)
}

// Evaluate scores it against med. Malformed itineraries get the worst score
// instead of an error so selection can discard them.
func (e *FitnessEvaluator) Evaluate(it domain.Itinerary, med domain.Medication) Fitness {
	if !e.WellFormed(it) {
		return worstFitness()
	}

	distance := it.TotalDistance()
	if math.IsNaN(distance) {
		return worstFitness()
	}

	minutes := it.TotalTime(e.averageSpeedKmh)
	return Fitness{
		Valid:       true,
		Feasible:    minutes <= med.MaxDurationMinutes,
		DistanceKm:  distance,
		TimeMinutes: minutes,
	}
}

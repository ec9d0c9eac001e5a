package services

import (
	"math"
	"medication-route-service/internal/domain"
)

// NearestNeighborRoute builds an itinerary with the greedy nearest-neighbor heuristic.
//
// From the distributor it repeatedly moves to the closest unvisited pharmacy.
// Ties are broken by label so the result is deterministic. It is not optimal
// and serves as an optional seed for the genetic search.
func NearestNeighborRoute(distributor domain.Stop, pharmacies []domain.Stop, roundTrip bool) domain.Itinerary {
	remaining := make([]domain.Stop, len(pharmacies))
	copy(remaining, pharmacies)

	stops := make([]domain.Stop, 0, len(pharmacies)+2)
	stops = append(stops, distributor)
	current := distributor

	for len(remaining) > 0 {
		bestIdx := -1
		minDistance := math.Inf(1)

		// Select next stop by minimum great-circle distance (greedy step).
		for i, p := range remaining {
			d := domain.Distance(current.Location, p.Location)
			if bestIdx == -1 || d < minDistance || (d == minDistance && p.Label < remaining[bestIdx].Label) {
				minDistance = d
				bestIdx = i
			}
		}

		current = remaining[bestIdx]
		stops = append(stops, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	if roundTrip {
		stops = append(stops, distributor)
	}

	return domain.NewItinerary(stops)
}

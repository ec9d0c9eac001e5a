package services

import (
	"math/rand/v2"
	"medication-route-service/internal/domain"
)

// InitializePopulation builds size itineraries, each the distributor followed by
// a uniformly random permutation of pharmacies (and the distributor again when
// roundTrip is set).
func InitializePopulation(
	distributor domain.Stop,
	pharmacies []domain.Stop,
	size int,
	roundTrip bool,
	rng *rand.Rand,
) ([]domain.Itinerary, error) {
	if len(pharmacies) == 0 {
		return nil, &domain.ConfigurationError{Field: "pharmacies", Reason: "must not be empty"}
	}
	if size < 1 {
		return nil, &domain.ConfigurationError{Field: "population_size", Reason: "must be at least 1"}
	}

	population := make([]domain.Itinerary, 0, size)
	for range size {
		population = append(population, randomItinerary(distributor, pharmacies, roundTrip, rng))
	}

	return population, nil
}

func randomItinerary(distributor domain.Stop, pharmacies []domain.Stop, roundTrip bool, rng *rand.Rand) domain.Itinerary {
	stops := make([]domain.Stop, 0, len(pharmacies)+2)
	stops = append(stops, distributor)
	for _, idx := range rng.Perm(len(pharmacies)) {
		stops = append(stops, pharmacies[idx])
	}
	if roundTrip {
		stops = append(stops, distributor)
	}
	return domain.NewItinerary(stops)
}

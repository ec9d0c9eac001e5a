package services

import (
	"math"
	"medication-route-service/internal/domain"
)

// OptimizerConfig holds the tunables of one optimization run.
// It is passed explicitly per request; the engine never reads the environment.
type OptimizerConfig struct {
	PopulationSize   int
	Generations      int
	MutationRate     float64
	AverageSpeedKmh  float64
	Elitism          bool
	RoundTrip        bool
	StallGenerations int // stop after this many generations without improvement; 0 disables

	// Replace one random individual of the initial population with the
	// nearest-neighbor route.
	SeedNearestNeighbor bool

	// Nil picks a time-based seed; the seed actually used is reported in PlanResult.
	Seed *uint64
}

func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		PopulationSize:  100,
		Generations:     100,
		MutationRate:    0.1,
		AverageSpeedKmh: 50,
		Elitism:         true,
		RoundTrip:       false,
	}
}

// Validate rejects tunables the optimizer cannot run with.
func (c OptimizerConfig) Validate() error {
	if c.PopulationSize < 1 {
		return &domain.ConfigurationError{Field: "population_size", Reason: "must be at least 1"}
	}
	if c.Generations < 1 {
		return &domain.ConfigurationError{Field: "generations", Reason: "must be at least 1"}
	}
	if math.IsNaN(c.MutationRate) || c.MutationRate < 0 || c.MutationRate > 1 {
		return &domain.ConfigurationError{Field: "mutation_rate", Reason: "must be within [0, 1]"}
	}
	if math.IsNaN(c.AverageSpeedKmh) || math.IsInf(c.AverageSpeedKmh, 0) || c.AverageSpeedKmh <= 0 {
		return &domain.ConfigurationError{Field: "average_speed_kmh", Reason: "must be a positive number"}
	}
	if c.StallGenerations < 0 {
		return &domain.ConfigurationError{Field: "stall_generations", Reason: "must not be negative"}
	}
	return nil
}

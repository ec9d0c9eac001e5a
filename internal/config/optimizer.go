package config

import (
	"errors"
	"medication-route-service/internal/services"
)

// OptimizerDefaults reads deployment-wide optimizer defaults from the
// environment. Requests may still override each field.
func OptimizerDefaults() (services.OptimizerConfig, error) {
	cfg := services.DefaultOptimizerConfig()

	var errs []error
	var err error

	if cfg.PopulationSize, err = GetInt("DEFAULT_POPULATION", cfg.PopulationSize); err != nil {
		errs = append(errs, err)
	}
	if cfg.Generations, err = GetInt("DEFAULT_GENERATIONS", cfg.Generations); err != nil {
		errs = append(errs, err)
	}
	if cfg.MutationRate, err = GetFloat("DEFAULT_MUTATION_RATE", cfg.MutationRate); err != nil {
		errs = append(errs, err)
	}
	if cfg.AverageSpeedKmh, err = GetFloat("DEFAULT_SPEED_KMH", cfg.AverageSpeedKmh); err != nil {
		errs = append(errs, err)
	}
	if cfg.Elitism, err = GetBool("DEFAULT_ELITISM", cfg.Elitism); err != nil {
		errs = append(errs, err)
	}
	if cfg.RoundTrip, err = GetBool("DEFAULT_ROUND_TRIP", cfg.RoundTrip); err != nil {
		errs = append(errs, err)
	}
	if cfg.StallGenerations, err = GetInt("DEFAULT_STALL_GENERATIONS", cfg.StallGenerations); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return services.OptimizerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return services.OptimizerConfig{}, err
	}
	return cfg, nil
}

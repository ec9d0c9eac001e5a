package dto

import (
	"bytes"
	"encoding/json"
)

type StopRequest struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// DistributorRef is either a directory name ("Distribuidora CDMX") or an
// explicit stop ({"name": ..., "lat": ..., "lon": ...}).
type DistributorRef struct {
	Name string
	Stop *StopRequest
}

func (d *DistributorRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &d.Name)
	}

	var s StopRequest
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d.Stop = &s
	return nil
}

type MedicationRequest struct {
	Name         string   `json:"name"`
	MaxDuration  *float64 `json:"max_duration"`
	DurationUnit string   `json:"duration_unit"`
}

// PlanOptions overrides the server's optimizer defaults for one request.
type PlanOptions struct {
	PopulationSize      *int     `json:"population_size"`
	Generations         *int     `json:"generations"`
	MutationRate        *float64 `json:"mutation_rate"`
	AverageSpeedKmh     *float64 `json:"average_speed_kmh"`
	Elitism             *bool    `json:"elitism"`
	RoundTrip           *bool    `json:"round_trip"`
	RandomSeed          *uint64  `json:"random_seed"`
	StallGenerations    *int     `json:"stall_generations"`
	SeedNearestNeighbor *bool    `json:"seed_nearest_neighbor"`
}

type PlanRequest struct {
	Distributor DistributorRef    `json:"distributor"`
	Pharmacies  []StopRequest     `json:"pharmacies"`
	Medication  MedicationRequest `json:"medication"`
	Options     *PlanOptions      `json:"options"`
}

type RouteStopResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type PlanResponse struct {
	Medication         string              `json:"medication"`
	MaxDurationMinutes float64             `json:"max_duration_minutes"`
	Route              []RouteStopResponse `json:"route"`
	DistanceKm         float64             `json:"distance_km"`
	TimeMinutes        float64             `json:"time_minutes"`
	Feasible           bool                `json:"feasible"`
	Message            string              `json:"message,omitempty"`
	Seed               uint64              `json:"seed"`
	Generations        int                 `json:"generations"`
}

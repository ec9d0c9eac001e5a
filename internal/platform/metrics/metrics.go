package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Plan outcomes used as the "outcome" label.
const (
	OutcomeFeasible   = "feasible"
	OutcomeInfeasible = "infeasible"
	OutcomeRejected   = "rejected"
	OutcomeError      = "error"
)

var (
	PlansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "medroute_plans_total",
		Help: "Route plan requests by outcome",
	}, []string{"outcome"})
	PlanDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "medroute_plan_duration_ms",
		Help:    "Route optimization duration in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	PlanGenerations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "medroute_plan_generations",
		Help:    "Generations completed per optimization run",
		Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
	})
	PlanPharmacies = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "medroute_plan_pharmacies",
		Help:    "Pharmacies per route plan request",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "medroute_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "code"})
)

func init() {
	prometheus.MustRegister(PlansTotal)
	prometheus.MustRegister(PlanDurationMs)
	prometheus.MustRegister(PlanGenerations)
	prometheus.MustRegister(PlanPharmacies)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }

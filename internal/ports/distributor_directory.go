package ports

import (
	"context"
	"errors"
	"medication-route-service/internal/domain"
)

var ErrDistributorNotFound = errors.New("distributor not found")

// Port: a boundary for resolving distributors by name from tabular storage.
type DistributorDirectory interface {
	// Return the distributor registered under name, or ErrDistributorNotFound.
	FindDistributor(ctx context.Context, name string) (domain.Stop, error)
	// Return all distributors ordered by name.
	ListDistributors(ctx context.Context) ([]domain.Stop, error)
}

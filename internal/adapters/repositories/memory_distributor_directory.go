package repositories

import (
	"context"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/ports"
	"slices"
	"strings"
)

// In-memory DistributorDirectory, typically loaded from a CSV file.
// It is read-only after construction and safe for concurrent use.
type MemoryDistributorDirectory struct {
	byName map[string]domain.Stop
	sorted []domain.Stop
}

func NewMemoryDistributorDirectory(stops []domain.Stop) *MemoryDistributorDirectory {
	byName := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		byName[s.Label] = s
	}

	sorted := make([]domain.Stop, 0, len(byName))
	for _, s := range byName {
		sorted = append(sorted, s)
	}
	slices.SortFunc(sorted, func(a, b domain.Stop) int { return strings.Compare(a.Label, b.Label) })

	return &MemoryDistributorDirectory{byName: byName, sorted: sorted}
}

func (m *MemoryDistributorDirectory) FindDistributor(_ context.Context, name string) (domain.Stop, error) {
	s, ok := m.byName[name]
	if !ok {
		return domain.Stop{}, ports.ErrDistributorNotFound
	}
	return s, nil
}

func (m *MemoryDistributorDirectory) ListDistributors(_ context.Context) ([]domain.Stop, error) {
	return slices.Clone(m.sorted), nil
}

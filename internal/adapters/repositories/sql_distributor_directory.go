package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"medication-route-service/internal/domain"
	"medication-route-service/internal/platform/obs"
	"medication-route-service/internal/ports"
)

// SQL-backed implementation of the DistributorDirectory port.
// The same queries serve Postgres (pgx stdlib driver) and SQLite; only the
// placeholder syntax differs.
type SQLDistributorDirectory struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresDistributorDirectory(db *sql.DB) *SQLDistributorDirectory {
	return &SQLDistributorDirectory{DB: db, Dialect: Postgres}
}

func NewSqliteDistributorDirectory(db *sql.DB) *SQLDistributorDirectory {
	return &SQLDistributorDirectory{DB: db, Dialect: Sqlite}
}

func (s *SQLDistributorDirectory) FindDistributor(ctx context.Context, name string) (_ domain.Stop, err error) {
	defer obs.Time(ctx, s.Dialect.String()+".FindDistributor")(&err)

	if s.DB == nil {
		return domain.Stop{}, errors.New("distributor directory: DB is nil")
	}

	q := fmt.Sprintf(`
	SELECT name, latitude, longitude
	FROM distributors
	WHERE name = %s;
	`, s.Dialect.bind(1))

	var stop domain.Stop
	err = s.DB.QueryRowContext(ctx, q, name).Scan(&stop.Label, &stop.Location.Lat, &stop.Location.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stop{}, ports.ErrDistributorNotFound
	}
	if err != nil {
		return domain.Stop{}, fmt.Errorf("find distributor: query distributors table: %w", err)
	}

	return stop, nil
}

func (s *SQLDistributorDirectory) ListDistributors(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, s.Dialect.String()+".ListDistributors")(&err)

	if s.DB == nil {
		return nil, errors.New("distributor directory: DB is nil")
	}

	query := `
	SELECT name, latitude, longitude
	FROM distributors
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list distributors: query distributors table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		var stop domain.Stop
		if err := rows.Scan(&stop.Label, &stop.Location.Lat, &stop.Location.Lon); err != nil {
			return nil, fmt.Errorf("list distributors: scan row: %w", err)
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list distributors: row iteration: %w", err)
	}

	return stops, nil
}

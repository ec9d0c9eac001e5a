package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"medication-route-service/internal/domain"
	"strings"
)

// Dialect selects placeholder syntax for the SQL backends.
type Dialect int

const (
	Postgres Dialect = iota
	Sqlite
)

// bind returns the placeholder for the n-th (1-based) argument.
func (d Dialect) bind(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Initialize the distributors table. The DDL is valid for both Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDistributorsQuery := `
	CREATE TABLE IF NOT EXISTS distributors (
		name TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	if _, err := tx.ExecContext(ctx, createDistributorsQuery); err != nil {
		return fmt.Errorf("init schema: create distributors: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert distributors by name.
func SeedDistributors(ctx context.Context, db *sql.DB, dialect Dialect, stops []domain.Stop) error {
	if db == nil {
		return errors.New("seed distributors: DB is nil")
	}

	if len(stops) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed distributors: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
	INSERT INTO distributors (name, latitude, longitude)
	VALUES (%s, %s, %s)
	ON CONFLICT (name) DO UPDATE
	SET latitude = excluded.latitude,
		longitude = excluded.longitude;
	`, dialect.bind(1), dialect.bind(2), dialect.bind(3))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed distributors: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range stops {
		name := strings.TrimSpace(s.Label)
		if name == "" {
			return fmt.Errorf("seed distributors: row %d: name cannot be empty", i+1)
		}
		if !s.Location.Valid() {
			return fmt.Errorf("seed distributors: %q: coordinates out of range", name)
		}

		if _, err := stmt.ExecContext(ctx, name, s.Location.Lat, s.Location.Lon); err != nil {
			return fmt.Errorf("seed distributors: insert %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed distributors: commit tx: %w", err)
	}

	return nil
}

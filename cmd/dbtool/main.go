package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"medication-route-service/internal/adapters/repositories"
	"medication-route-service/internal/config"
	"medication-route-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool initializes the distributors table and upserts rows from a CSV file.
// It targets Postgres when DATABASE_URL is set and SQLite (DB_PATH) otherwise.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := flag.String("csv", config.Get("DISTRIBUTORS_CSV", "data/distribuidores.csv"), "distributor CSV (Nombre,Latitud,Longitud)")
	flag.Parse()

	ctx := context.Background()

	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err = db.Open(ctx, url)
		dialect = repositories.Postgres
	} else {
		conn, err = db.OpenSqlite(ctx, config.Get("DB_PATH", "data/app.db"))
		dialect = repositories.Sqlite
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, dialect, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Printf("Initializing database schema dialect=%s...", dialect)
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	stops, err := repositories.LoadDistributorsCSV(seedPath)
	if err != nil {
		return err
	}

	log.Printf("Seeding distributors count=%d...", len(stops))
	if err := repositories.SeedDistributors(ctx, conn, dialect, stops); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}

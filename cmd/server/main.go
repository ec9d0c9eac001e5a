package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"medication-route-service/internal/adapters/cache"
	"medication-route-service/internal/adapters/repositories"
	"medication-route-service/internal/api"
	"medication-route-service/internal/config"
	"medication-route-service/internal/platform/db"
	"medication-route-service/internal/ports"
	"medication-route-service/internal/services"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It picks a distributor directory backend, optionally fronts it with Redis,
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	port := config.Get("PORT", "8080")
	planTimeout, err := config.GetDuration("PLAN_TIMEOUT", 30*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	defaults, err := config.OptimizerDefaults()
	if err != nil {
		log.Fatal(err)
	}

	directory, closeDir, err := openDirectory(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDir()

	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		redisDB, err := config.GetInt("REDIS_DB", 0)
		if err != nil {
			log.Fatal(err)
		}
		ttl, err := config.GetDuration("DIRECTORY_CACHE_TTL", 10*time.Minute)
		if err != nil {
			log.Fatal(err)
		}

		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Get("REDIS_PASSWORD", ""),
			DB:       redisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis ping failed addr=%s err=%v (lookups fall back to the directory)", addr, err)
		}
		directory = cache.NewRedisDistributorDirectory(client, directory, ttl)
		log.Printf("Distributor cache enabled addr=%s ttl=%s", addr, ttl)
	}

	router := api.NewRouter(directory, services.NewOptimizationService(), defaults, planTimeout)

	log.Printf(
		"Server listening addr=:%s speed_kmh=%.0f round_trip=%t population=%d generations=%d",
		port, defaults.AverageSpeedKmh, defaults.RoundTrip, defaults.PopulationSize, defaults.Generations,
	)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      planTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openDirectory selects Postgres when DATABASE_URL is set, SQLite when DB_PATH
// is set, and otherwise serves the CSV file from memory.
func openDirectory(ctx context.Context) (ports.DistributorDirectory, func(), error) {
	csvPath := config.Get("DISTRIBUTORS_CSV", "data/distribuidores.csv")

	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Distributor directory: postgres")
		return repositories.NewPostgresDistributorDirectory(conn), closer(conn), nil
	}

	if path := config.Get("DB_PATH", ""); path != "" {
		conn, err := db.OpenSqlite(ctx, path)
		if err != nil {
			return nil, nil, err
		}

		// Initialize schema and seed on startup for local runs.
		if err := initAndSeed(ctx, conn, repositories.Sqlite, csvPath); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Printf("Distributor directory: sqlite path=%s", path)
		return repositories.NewSqliteDistributorDirectory(conn), closer(conn), nil
	}

	stops, err := repositories.LoadDistributorsCSV(csvPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Distributor directory: csv path=%s distributors=%d", csvPath, len(stops))
	return repositories.NewMemoryDistributorDirectory(stops), func() {}, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, csvPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	stops, err := repositories.LoadDistributorsCSV(csvPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedDistributors(ctx, conn, dialect, stops); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
}

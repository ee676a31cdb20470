package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"store-route-service/internal/adapters/activity"
	"store-route-service/internal/adapters/cache"
	"store-route-service/internal/adapters/floorplan"
	"store-route-service/internal/adapters/repositories"
	"store-route-service/internal/api"
	"store-route-service/internal/config"
	"store-route-service/internal/platform/db"
	"store-route-service/internal/ports"
	"store-route-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL, file or HTTP floor plans, Redis cache)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var conn *sql.DB
	if cfg.FloorPlanSource == config.SourceDB || cfg.ActivitySink == config.SinkDB {
		conn, err = db.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
	}

	provider, err := newProvider(ctx, cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	// Without a cache there is nothing to invalidate and the endpoint is a no-op.
	var invalidator ports.FloorPlanInvalidator
	floorPlanCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()
	if floorPlanCache != nil {
		cached := floorplan.NewCachedProvider(provider, floorPlanCache)
		provider, invalidator = cached, cached
	}

	var sink ports.ActivitySink = activity.LogSink{}
	if cfg.ActivitySink == config.SinkDB {
		sink = repositories.NewSQLActivitySink(conn, cfg.DBDriver)
	}

	svc := services.NewRouteService(provider, sink, cfg.Engine)
	router := api.NewRouter(svc, invalidator)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s source=%s sink=%s", cfg.Port, cfg.FloorPlanSource, cfg.ActivitySink)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg *config.Config, conn *sql.DB) (ports.FloorPlanProvider, error) {
	switch cfg.FloorPlanSource {
	case config.SourceFile:
		return floorplan.NewFileProvider(cfg.SeedPath)
	case config.SourceHTTP:
		return floorplan.NewHTTPProvider(cfg.FloorPlanAPIURL, cfg.FloorPlanAPIKey)
	}

	repo := repositories.NewSQLFloorPlanRepository(conn, cfg.DBDriver)

	// Seed demo floor plans on startup for local SQLite runs.
	if cfg.DBDriver == db.DriverSQLite {
		if _, err := os.Stat(cfg.SeedPath); err == nil {
			if err := repositories.SeedFromJSON(ctx, repo, cfg.SeedPath); err != nil {
				return nil, fmt.Errorf("new provider: %w", err)
			}
		}
	}

	return repo, nil
}

// newCache returns the Redis cache when REDIS_URL is set, an in-process cache
// when only a TTL is configured, or nil when caching is disabled.
func newCache(ctx context.Context, cfg *config.Config) (ports.FloorPlanCache, func(), error) {
	noop := func() {}

	if cfg.RedisURL == "" {
		if cfg.CacheTTL <= 0 {
			return nil, noop, nil
		}
		return cache.NewMemoryFloorPlanCache(cfg.CacheTTL), noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("new cache: parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, noop, fmt.Errorf("new cache: ping redis: %w", err)
	}

	return cache.NewRedisFloorPlanCache(client, cfg.CacheTTL), func() { client.Close() }, nil
}

package main

import (
	"context"
	"database/sql"
	"log"
	"store-route-service/internal/adapters/repositories"
	"store-route-service/internal/config"
	"store-route-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema and loads the floor-plan seed file into the
// configured database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", db.DriverSQLite)
	databaseURL := config.Get("DATABASE_URL", "data/app.db")

	conn, err := db.Open(driver, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/floorplans.json")
	if err := initAndSeed(context.Background(), conn, driver, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	repo := repositories.NewSQLFloorPlanRepository(conn, driver)
	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}

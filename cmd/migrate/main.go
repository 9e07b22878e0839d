package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/aalopez23/county-hr-dashboard/internal/migrate"
	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

func main() {
	_ = godotenv.Load()

	driver, dsn := store.DriverSQLite, os.Getenv("HR_SQLITE_PATH")
	if dsn == "" {
		dsn = "hr-portal.db"
	}
	if pg := os.Getenv("HR_PG_DSN"); pg != "" {
		driver, dsn = store.DriverPostgres, pg
	}

	kv, err := store.Open(driver, dsn)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer kv.Close()

	if err := migrate.NewManager(kv.DB(), kv.Driver()).Up(context.Background(), store.Migrations()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrations applied (%s)", driver)
}

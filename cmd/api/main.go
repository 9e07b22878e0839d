package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aalopez23/county-hr-dashboard/internal/bulletin"
	"github.com/aalopez23/county-hr-dashboard/internal/directory"
	"github.com/aalopez23/county-hr-dashboard/internal/httpapi"
	"github.com/aalopez23/county-hr-dashboard/internal/migrate"
	"github.com/aalopez23/county-hr-dashboard/internal/notify"
	"github.com/aalopez23/county-hr-dashboard/internal/obs"
	"github.com/aalopez23/county-hr-dashboard/internal/session"
	"github.com/aalopez23/county-hr-dashboard/internal/store"
	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

var version = "0.3.1"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("HR_BUILD_COMMIT"))

	driver, dsn := store.DriverSQLite, envOr("HR_SQLITE_PATH", "hr-portal.db")
	if pg := os.Getenv("HR_PG_DSN"); pg != "" {
		driver, dsn = store.DriverPostgres, pg
	}
	kv, err := store.Open(driver, dsn)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	ctx := context.Background()
	if err := migrate.NewManager(kv.DB(), kv.Driver()).Up(ctx, store.Migrations()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sessions := session.NewProvider(kv)
	requests := timeoff.NewService(kv)
	bulletins := bulletin.NewService(kv)
	dir := directory.NewService(kv)

	mailer := notify.New(notify.Config{
		Host:     os.Getenv("HR_SMTP_HOST"),
		Port:     envInt("HR_SMTP_PORT"),
		Username: os.Getenv("HR_SMTP_USER"),
		Password: os.Getenv("HR_SMTP_PASS"),
		From:     os.Getenv("HR_SMTP_FROM"),
	})

	api := httpapi.New(httpapi.ReadyProbe{DB: kv.DB()}, version, sessions, requests, bulletins, dir, mailer)

	srv := &http.Server{
		Addr:              envOr("HR_ADDR", ":8080"),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting county-hr-api %s on %s (store: %s)", version, srv.Addr, driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = kv.Close()
	log.Println("Stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

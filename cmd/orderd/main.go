package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"table-order-backend/config"
	"table-order-backend/internal/api"
	"table-order-backend/internal/db"
	"table-order-backend/internal/metrics"
	"table-order-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "orderd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.SeedMenu(gormDB, db.MenuFromConfig(&cfg.Menu)); err != nil {
		logger.Fatalf("failed to seed menu: %v", err)
	}
	logger.Printf("database initialized (%s)", cfg.Database.Driver)

	seed := cfg.Kitchen.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := metrics.New()
	appStore := store.NewGormStore(gormDB,
		store.WithSampler(store.NewUniformSampler(seed)),
		store.WithObserver(m),
	)

	router := api.NewRouter(appStore, &cfg.Server, m)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Println("Server gracefully stopped")
}

// Package main is the entry point for the room booking API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"roombooking/src/app/server"
	"roombooking/src/core/ports"
	"roombooking/src/infra/config"
	"roombooking/src/infra/db"
	"roombooking/src/infra/logger"
	"roombooking/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// The pool is established lazily and shared by every request. An
	// unreachable database makes requests fail with 503 instead of keeping
	// the process from starting.
	cache := db.NewCache(cfg.Database, log)
	defer cache.Close()

	ctx := context.Background()
	go func() {
		if _, err := cache.Get(ctx); err != nil {
			log.Warn("database not reachable at startup", "error", err)
		}
	}()

	store := repo.NewPostgresRepository(cache, log)

	srv := server.New(cfg, log, server.Deps{
		Users:    store,
		Bookings: store,
		Health:   map[string]ports.HealthChecker{"database": cache},
	})

	return srv.Run(ctx)
}

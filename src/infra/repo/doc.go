// Package repo contains PostgreSQL implementations of repository interfaces.
//
// This package implements the ports defined in src/core/ports.
// Repositories never hold a pool of their own: every call obtains the shared
// pool from db.Cache, so a store that is down at start-up is retried on the
// next request instead of wedging the process.
//
//	cache := db.NewCache(cfg.Database, log)
//	repo := repo.NewPostgresRepository(cache, log)
//	booking, err := repo.CreateBooking(ctx, candidate)
package repo

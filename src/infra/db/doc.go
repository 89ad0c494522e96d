// Package db provides database connection management for PostgreSQL.
//
// This package is responsible for:
//   - Opening a bounded pgx connection pool (Dial)
//   - Sharing one pool across all requests (Cache)
//   - Applying embedded schema migrations (Migrate)
//
// Example usage:
//
//	cache := db.NewCache(cfg.Database, log)
//	defer cache.Close()
//
//	pg, err := cache.Get(ctx)
//	if err != nil {
//	    return err // a domain connection error
//	}
package db

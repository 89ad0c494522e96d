package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"roombooking/src/core/domain"
	"roombooking/src/core/ports"
	"roombooking/src/infra/db"
)

var (
	_ ports.UserRepository    = (*PostgresRepository)(nil)
	_ ports.BookingRepository = (*PostgresRepository)(nil)
)

// PostgresRepository implements the user and booking ports using pgx.
type PostgresRepository struct {
	cache *db.Cache
	log   *slog.Logger
}

// NewPostgresRepository constructs a repository backed by the cached pool.
func NewPostgresRepository(cache *db.Cache, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		cache: cache,
		log:   log,
	}
}

func (r *PostgresRepository) pool(ctx context.Context) (*pgxpool.Pool, error) {
	pg, err := r.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pg.Pool, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// storeError wraps err with op, classifying lost connections and timeouts
// as domain connection errors.
func storeError(op string, err error) error {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, domain.NewConnectionError(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

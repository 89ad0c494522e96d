package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roombooking/src/core/domain"
)

func (r *PostgresRepository) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	pool, err := r.pool(ctx)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, username, password_hash, created_at
	`
	var out domain.User
	err = pool.QueryRow(ctx, q, u.Username, u.PasswordHash).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("username already taken")
		}
		return nil, storeError("create user", err)
	}
	return &out, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	return r.getUser(ctx, q, id)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	return r.getUser(ctx, q, username)
}

func (r *PostgresRepository) getUser(ctx context.Context, q string, arg any) (*domain.User, error) {
	pool, err := r.pool(ctx)
	if err != nil {
		return nil, err
	}

	var u domain.User
	if err := pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, storeError("get user", err)
	}
	return &u, nil
}

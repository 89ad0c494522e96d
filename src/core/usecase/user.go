package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"roombooking/src/core/domain"
	"roombooking/src/core/ports"
	"roombooking/src/core/schema"
)

// UserService handles user registration and lookup.
type UserService struct {
	repo ports.UserRepository
	log  *slog.Logger
	cost int
}

func NewUserService(repo ports.UserRepository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: orDiscard(log), cost: bcrypt.DefaultCost}
}

// Register validates in, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, in schema.UserInput) (*domain.User, error) {
	u, err := schema.ParseUser(in)
	if err != nil {
		return nil, err
	}

	switch _, err := s.repo.GetUserByUsername(ctx, u.Username); {
	case err == nil:
		return nil, domain.NewConflictError("username already taken")
	case !domain.IsNotFound(err):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.Password = ""
	u.PasswordHash = string(hash)

	created, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewValidationError("id", "id must be a valid id")
	}
	return s.repo.GetUserByID(ctx, userID)
}

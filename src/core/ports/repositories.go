// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"github.com/google/uuid"

	"roombooking/src/core/domain"
)

// UserRepository stores users.
type UserRepository interface {
	// CreateUser persists u and returns it with its identifier and creation
	// time. A taken username yields a conflict error.
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BookingRepository stores bookings and owns the no-overlap invariant.
type BookingRepository interface {
	// CreateBooking persists candidate unless another booking holds the same
	// room on the same date for an overlapping time, in which case it returns
	// a conflict error. Check and insert are atomic with respect to other
	// CreateBooking calls.
	CreateBooking(ctx context.Context, candidate domain.Booking) (*domain.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// ListBookings returns bookings matching filter ordered by date and start time.
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
}

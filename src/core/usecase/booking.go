package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"roombooking/src/core/domain"
	"roombooking/src/core/ports"
	"roombooking/src/core/schema"
)

// BookingService handles room reservation flows.
type BookingService struct {
	bookings ports.BookingRepository
	users    ports.UserRepository
	log      *slog.Logger
}

func NewBookingService(bookings ports.BookingRepository, users ports.UserRepository, log *slog.Logger) *BookingService {
	return &BookingService{bookings: bookings, users: users, log: orDiscard(log)}
}

// Create validates in and reserves the room. Invalid input is rejected
// before the store is touched.
func (s *BookingService) Create(ctx context.Context, in schema.BookingInput) (*domain.Booking, error) {
	candidate, err := schema.ParseBooking(in)
	if err != nil {
		return nil, err
	}
	if candidate.UserID != nil {
		if _, err := s.users.GetUserByID(ctx, *candidate.UserID); err != nil {
			return nil, err
		}
	}

	booking, err := s.bookings.CreateBooking(ctx, candidate)
	if err != nil {
		if domain.IsConflict(err) {
			s.log.Info("booking rejected",
				"room", candidate.Room,
				"date", candidate.Date,
				"start", candidate.ClockStart.String(),
				"end", candidate.ClockEnd.String(),
			)
		}
		return nil, err
	}

	s.log.Info("booking created",
		"booking_id", booking.ID,
		"room", booking.Room,
		"date", booking.Date,
		"start", booking.ClockStart.String(),
		"end", booking.ClockEnd.String(),
	)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewValidationError("id", "id must be a valid id")
	}
	return s.bookings.GetBooking(ctx, bookingID)
}

// List returns bookings filtered by any of room, date and user.
func (s *BookingService) List(ctx context.Context, room, date, userID string) ([]domain.Booking, error) {
	filter, err := schema.ParseFilter(room, date, userID)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListBookings(ctx, filter)
}

// Availability is what is already reserved in one room on one date.
type Availability struct {
	Room     domain.Room
	Date     string
	Bookings []domain.Booking
}

// Availability returns the reservations of room on date, ordered by start
// time. Room and Date echo the normalized values that were queried.
func (s *BookingService) Availability(ctx context.Context, room, date string) (*Availability, error) {
	if room == "" {
		return nil, domain.NewValidationError("room", "room is required")
	}
	filter, err := schema.ParseFilter(room, date, "")
	if err != nil {
		return nil, err
	}
	if filter.Date == "" {
		return nil, domain.NewValidationError("date", "date is required")
	}
	bookings, err := s.bookings.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Availability{Room: filter.Room, Date: filter.Date, Bookings: bookings}, nil
}

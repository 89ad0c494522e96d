package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"roombooking/src/core/domain"
)

// bookingRepoStub keeps bookings in memory and enforces the overlap rule the
// way the Postgres repository does.
type bookingRepoStub struct {
	mu          sync.Mutex
	bookings    []domain.Booking
	createCalls int
	err         error
}

func (r *bookingRepoStub) CreateBooking(ctx context.Context, candidate domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.err != nil {
		return nil, r.err
	}
	if clash := domain.FindConflict(r.bookings, &candidate); clash != nil {
		return nil, domain.NewBookingConflictError(clash)
	}
	candidate.ID = uuid.New()
	candidate.CreatedAt = time.Now()
	r.bookings = append(r.bookings, candidate)
	return &candidate, nil
}

func (r *bookingRepoStub) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.NewNotFoundError("booking")
}

func (r *bookingRepoStub) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Booking
	for _, b := range r.bookings {
		if f.Room != "" && b.Room != f.Room {
			continue
		}
		if f.Date != "" && b.Date != f.Date {
			continue
		}
		if f.UserID != nil && (b.UserID == nil || *b.UserID != *f.UserID) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ClockStart.Before(out[j].ClockStart)
	})
	return out, nil
}

type userRepoStub struct {
	users   map[uuid.UUID]domain.User
	created domain.User
	err     error
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[uuid.UUID]domain.User)}
}

func (r *userRepoStub) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	r.created = u
	return &u, nil
}

func (r *userRepoStub) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return &u, nil
}

func (r *userRepoStub) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

type healthStub struct{ err error }

func (h healthStub) Health(ctx context.Context) error { return h.err }

package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roombooking/src/core/domain"
)

const bookingColumns = `
	booking_id, user_id, day, date, event,
	start_hours, start_minutes, end_hours, end_minutes,
	room, pic, kapasitas, rapat, catatan, created_at
`

// CreateBooking inserts candidate after checking it against the bookings
// already holding its room on its date. The check and the insert run in one
// transaction under an advisory lock keyed on room and date, so concurrent
// requests for the same slot are serialized. The bookings_no_overlap
// exclusion constraint rejects anything that slips past.
func (r *PostgresRepository) CreateBooking(ctx context.Context, candidate domain.Booking) (*domain.Booking, error) {
	pool, err := r.pool(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, storeError("begin booking", err)
	}
	defer tx.Rollback(ctx)

	if candidate.HasRoom() {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, slotKey(candidate)); err != nil {
			return nil, storeError("lock slot", err)
		}

		q := `SELECT ` + bookingColumns + ` FROM bookings WHERE room = $1 AND date = $2`
		rows, err := tx.Query(ctx, q, string(candidate.Room), candidate.Date)
		if err != nil {
			return nil, storeError("load room schedule", err)
		}
		existing, err := collectBookings(rows)
		if err != nil {
			return nil, storeError("load room schedule", err)
		}
		if clash := domain.FindConflict(existing, &candidate); clash != nil {
			return nil, domain.NewBookingConflictError(clash)
		}
	}

	q := `
		INSERT INTO bookings (
			user_id, day, date, event,
			start_hours, start_minutes, end_hours, end_minutes,
			room, pic, kapasitas, rapat, catatan
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + bookingColumns
	row := tx.QueryRow(ctx, q,
		candidate.UserID,
		candidate.Day,
		candidate.Date,
		candidate.Event,
		candidate.ClockStart.Hours,
		candidate.ClockStart.Minutes,
		candidate.ClockEnd.Hours,
		candidate.ClockEnd.Minutes,
		nullable(string(candidate.Room)),
		candidate.PIC,
		candidate.Kapasitas,
		nullable(string(candidate.Rapat)),
		candidate.Catatan,
	)
	created, err := scanBooking(row)
	if err != nil {
		return nil, insertBookingError(candidate, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeError("commit booking", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	pool, err := r.pool(ctx)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`
	b, err := scanBooking(pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("booking")
		}
		return nil, storeError("get booking", err)
	}
	return b, nil
}

func (r *PostgresRepository) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	pool, err := r.pool(ctx)
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.Room != "" {
		args = append(args, string(filter.Room))
		where = append(where, fmt.Sprintf("room = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	q := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY date, start_hours, start_minutes, created_at`

	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	return bookings, nil
}

// insertBookingError classifies a failed booking insert.
func insertBookingError(candidate domain.Booking, err error) error {
	switch {
	case isExclusionViolation(err):
		return domain.NewConflictError(fmt.Sprintf("%s is already booked on %s for an overlapping time",
			candidate.Room, candidate.Date))
	case isForeignKeyViolation(err):
		// the user was deleted after the use case looked it up
		return domain.NewNotFoundError("user")
	default:
		return storeError("create booking", err)
	}
}

// slotKey identifies the advisory lock guarding one room on one date.
func slotKey(b domain.Booking) string {
	return string(b.Room) + "|" + b.Date
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b     domain.Booking
		room  *string
		rapat *string
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.Day, &b.Date, &b.Event,
		&b.ClockStart.Hours, &b.ClockStart.Minutes, &b.ClockEnd.Hours, &b.ClockEnd.Minutes,
		&room, &b.PIC, &b.Kapasitas, &rapat, &b.Catatan, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if room != nil {
		b.Room = domain.Room(*room)
	}
	if rapat != nil {
		b.Rapat = domain.MeetingType(*rapat)
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

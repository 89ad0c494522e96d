package dto

import (
	"time"

	"roombooking/src/core/domain"
)

// ClockResponse is a time of day.
type ClockResponse struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// BookingResponse is the public view of a booking.
type BookingResponse struct {
	ID         string        `json:"id"`
	UserID     *string       `json:"userId"`
	Day        string        `json:"day"`
	Date       string        `json:"date"`
	Event      string        `json:"event"`
	ClockStart ClockResponse `json:"clockStart"`
	ClockEnd   ClockResponse `json:"clockEnd"`
	Room       *string       `json:"room"`
	PIC        string        `json:"pic"`
	Kapasitas  string        `json:"kapasitas"`
	Rapat      *string       `json:"rapat"`
	Catatan    string        `json:"catatan"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomsResponse lists the accepted enumerations.
type RoomsResponse struct {
	Rooms        []string `json:"rooms"`
	MeetingTypes []string `json:"meetingTypes"`
}

// AvailabilityResponse lists what is already reserved in a room on a date.
type AvailabilityResponse struct {
	Room     string            `json:"room"`
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
}

func BookingFromDomain(b *domain.Booking) BookingResponse {
	out := BookingResponse{
		ID:         b.ID.String(),
		Day:        b.Day,
		Date:       b.Date,
		Event:      b.Event,
		ClockStart: clockFromDomain(b.ClockStart),
		ClockEnd:   clockFromDomain(b.ClockEnd),
		Room:       optional(string(b.Room)),
		PIC:        b.PIC,
		Kapasitas:  b.Kapasitas,
		Rapat:      optional(string(b.Rapat)),
		Catatan:    b.Catatan,
		CreatedAt:  b.CreatedAt,
	}
	if b.UserID != nil {
		id := b.UserID.String()
		out.UserID = &id
	}
	return out
}

// BookingsFromDomain never returns nil so empty listings encode as [].
func BookingsFromDomain(bs []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for i := range bs {
		out = append(out, BookingFromDomain(&bs[i]))
	}
	return out
}

func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func RoomsFromDomain() RoomsResponse {
	out := RoomsResponse{}
	for _, r := range domain.Rooms() {
		out.Rooms = append(out.Rooms, string(r))
	}
	for _, m := range domain.MeetingTypes() {
		out.MeetingTypes = append(out.MeetingTypes, string(m))
	}
	return out
}

func clockFromDomain(c domain.ClockTime) ClockResponse {
	return ClockResponse{Hours: c.Hours, Minutes: c.Minutes}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

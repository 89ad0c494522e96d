package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is one of the bookable rooms. The set is closed; see Rooms.
type Room string

const (
	RoomRapatF3           Room = "Ruang Rapat F3"
	RoomRapatF6           Room = "Ruang Rapat F6"
	RoomRapatF5           Room = "Ruang Rapat F5"
	RoomKolaborasiHakim   Room = "Ruang Kolaborasi Hakim"
	RoomKolaborasiPegawai Room = "Ruang Kolaborasi Pegawai"
	RoomRapatF2           Room = "Ruang Rapat F2"
	RoomAssessmentF5      Room = "Ruang Assessment F5"
	RoomAssessmentF6      Room = "Ruang Assessment F6"
	RoomSerbagunaA5       Room = "Ruang Serbaguna A5"
)

var rooms = []Room{
	RoomRapatF3,
	RoomRapatF6,
	RoomRapatF5,
	RoomKolaborasiHakim,
	RoomKolaborasiPegawai,
	RoomRapatF2,
	RoomAssessmentF5,
	RoomAssessmentF6,
	RoomSerbagunaA5,
}

// Rooms returns every bookable room in display order.
func Rooms() []Room {
	out := make([]Room, len(rooms))
	copy(out, rooms)
	return out
}

// Valid reports whether r is a member of the room set.
func (r Room) Valid() bool {
	switch r {
	case RoomRapatF3, RoomRapatF6, RoomRapatF5,
		RoomKolaborasiHakim, RoomKolaborasiPegawai, RoomRapatF2,
		RoomAssessmentF5, RoomAssessmentF6, RoomSerbagunaA5:
		return true
	}
	return false
}

// MeetingType is the format of a meeting (the "rapat" field).
type MeetingType string

const (
	MeetingOffline MeetingType = "Offline"
	MeetingHybrid  MeetingType = "Hybrid"
)

// MeetingTypes returns every meeting type.
func MeetingTypes() []MeetingType {
	return []MeetingType{MeetingOffline, MeetingHybrid}
}

// Valid reports whether m is a known meeting type.
func (m MeetingType) Valid() bool {
	switch m {
	case MeetingOffline, MeetingHybrid:
		return true
	}
	return false
}

// User is a person who can own bookings.
type User struct {
	ID           uuid.UUID
	Username     string
	Password     string // plain input; only set between validation and hashing
	PasswordHash string
	CreatedAt    time.Time
}

// Booking is a reservation of a room for a time range on a date.
type Booking struct {
	ID         uuid.UUID
	UserID     *uuid.UUID // weak reference, may outlive the user
	Day        string
	Date       string
	Event      string
	ClockStart ClockTime
	ClockEnd   ClockTime
	Room       Room        // empty when unset
	PIC        string      // person in charge
	Kapasitas  string      // intended headcount, free text
	Rapat      MeetingType // empty when unset
	Catatan    string      // notes
	CreatedAt  time.Time
}

// HasRoom reports whether the booking targets a room.
func (b *Booking) HasRoom() bool {
	return b.Room != ""
}

// BookingFilter narrows a booking listing. Zero fields match everything.
type BookingFilter struct {
	Room   Room
	Date   string
	UserID *uuid.UUID
}

package domain

import "fmt"

// ClockTime is a wall-clock time of day with minute precision.
type ClockTime struct {
	Hours   int
	Minutes int
}

// Valid reports whether hours are in [0,23] and minutes in [0,59].
func (c ClockTime) Valid() bool {
	return c.Hours >= 0 && c.Hours <= 23 && c.Minutes >= 0 && c.Minutes <= 59
}

// MinuteOfDay returns the number of minutes since midnight.
func (c ClockTime) MinuteOfDay() int {
	return c.Hours*60 + c.Minutes
}

// Before reports whether c is strictly earlier than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.MinuteOfDay() < other.MinuteOfDay()
}

// String renders the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hours, c.Minutes)
}

// ClockFromMinutes converts minutes since midnight back into a ClockTime.
func ClockFromMinutes(m int) ClockTime {
	return ClockTime{Hours: m / 60, Minutes: m % 60}
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
// Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 ClockTime) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflict returns the first booking in existing that holds the same room
// on the same date for a time overlapping candidate, or nil.
// Bookings without a room never conflict.
func FindConflict(existing []Booking, candidate *Booking) *Booking {
	if !candidate.HasRoom() {
		return nil
	}
	for i := range existing {
		b := &existing[i]
		if b.ID == candidate.ID || b.Room != candidate.Room || b.Date != candidate.Date {
			continue
		}
		if Overlaps(b.ClockStart, b.ClockEnd, candidate.ClockStart, candidate.ClockEnd) {
			return b
		}
	}
	return nil
}

// Package domain contains the core domain model for room reservations.
//
// This package defines:
//   - Entities: User and Booking
//   - Value Objects: ClockTime, Room, MeetingType
//   - Domain Errors: validation, not found, conflict and unavailable errors
//   - Scheduling rules: interval overlap between bookings of one room and date
//
// Rules for this package:
//   - No external dependencies except the standard library and google/uuid
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Value objects are immutable
package domain

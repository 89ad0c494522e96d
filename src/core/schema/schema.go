// Package schema describes the accepted shape of User and Booking payloads
// and turns raw input into normalized domain values.
//
// The constraints are declared as `validate` struct tags and checked by
// go-playground/validator. Parsing never touches storage.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"roombooking/src/core/domain"
)

// ClockInput is the payload shape of a ClockTime. Pointers distinguish a
// missing value from zero.
type ClockInput struct {
	Hours   *int `json:"hours" validate:"required,min=0,max=23"`
	Minutes *int `json:"minutes" validate:"required,min=0,max=59"`
}

// BookingInput is the payload shape of a booking request.
type BookingInput struct {
	UserID     *string     `json:"userId"`
	Day        string      `json:"day" validate:"required"`
	Date       string      `json:"date" validate:"required"`
	Event      string      `json:"event" validate:"required"`
	ClockStart *ClockInput `json:"clockStart" validate:"required"`
	ClockEnd   *ClockInput `json:"clockEnd" validate:"required"`
	Room       string      `json:"room" validate:"omitempty,room"`
	PIC        string      `json:"pic" validate:"required"`
	Kapasitas  string      `json:"kapasitas" validate:"required"`
	Rapat      string      `json:"rapat" validate:"omitempty,rapat"`
	Catatan    string      `json:"catatan" validate:"required"`
}

// UserInput is the payload shape of a user registration.
type UserInput struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,min=4"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("room", func(fl validator.FieldLevel) bool {
		return domain.Room(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("rapat", func(fl validator.FieldLevel) bool {
		return domain.MeetingType(fl.Field().String()).Valid()
	})
	return v
}

// ParseBooking normalizes and validates in, returning the booking it
// describes or a validation error listing every rejected field.
func ParseBooking(in BookingInput) (domain.Booking, error) {
	in.Day = lower(in.Day)
	in.Date = lower(in.Date)
	in.Event = lower(in.Event)

	if err := check(in); err != nil {
		return domain.Booking{}, err
	}

	b := domain.Booking{
		Day:        in.Day,
		Date:       in.Date,
		Event:      in.Event,
		ClockStart: in.ClockStart.value(),
		ClockEnd:   in.ClockEnd.value(),
		Room:       domain.Room(in.Room),
		PIC:        in.PIC,
		Kapasitas:  in.Kapasitas,
		Rapat:      domain.MeetingType(in.Rapat),
		Catatan:    in.Catatan,
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) != "" {
		id, err := parseID(*in.UserID)
		if err != nil {
			return domain.Booking{}, domain.NewValidationError("userId", "userId must be a valid id")
		}
		b.UserID = &id
	}
	if !b.ClockStart.Before(b.ClockEnd) {
		return domain.Booking{}, domain.NewValidationError("clockEnd", "clockEnd must be after clockStart")
	}
	return b, nil
}

// ParseUser normalizes and validates in. The password is returned as given.
func ParseUser(in UserInput) (domain.User, error) {
	in.Username = lower(in.Username)
	if err := check(in); err != nil {
		return domain.User{}, err
	}
	return domain.User{Username: in.Username, Password: in.Password}, nil
}

// ParseFilter validates listing parameters. Empty values leave a dimension
// unfiltered.
func ParseFilter(room, date, userID string) (domain.BookingFilter, error) {
	var f domain.BookingFilter
	if room != "" {
		r := domain.Room(room)
		if !r.Valid() {
			return f, domain.NewValidationError("room", "room must be one of the bookable rooms")
		}
		f.Room = r
	}
	f.Date = lower(date)
	if userID != "" {
		id, err := parseID(userID)
		if err != nil {
			return f, domain.NewValidationError("userId", "userId must be a valid id")
		}
		f.UserID = &id
	}
	return f, nil
}

// FromDecodeError converts a JSON decoding failure into a validation error,
// naming the offending field when the decoder reports one.
func FromDecodeError(err error) *domain.DomainError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field,
			fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	}
	return domain.NewValidationError("", "request body is not valid JSON")
}

func (c *ClockInput) value() domain.ClockTime {
	return domain.ClockTime{Hours: *c.Hours, Minutes: *c.Minutes}
}

func parseID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("", err.Error())
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := fieldPath(fe)
		fields = append(fields, domain.FieldError{Field: name, Message: message(name, fe)})
	}
	return domain.NewValidationErrors(fields)
}

// fieldPath drops the root struct name from the namespace:
// "BookingInput.clockStart.hours" becomes "clockStart.hours".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "room":
		return field + " must be one of the bookable rooms"
	case "rapat":
		return field + " must be Offline or Hybrid"
	}
	return field + " is invalid"
}

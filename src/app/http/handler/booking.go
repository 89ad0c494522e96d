package handler

import (
	"github.com/gin-gonic/gin"

	"roombooking/src/app/http/dto"
	"roombooking/src/app/http/response"
	"roombooking/src/app/middleware"
	"roombooking/src/core/schema"
	"roombooking/src/core/usecase"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService *usecase.BookingService
}

func NewBookingHandler(bookingService *usecase.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create reserves a room.
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var in schema.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.FromDomainError(c, schema.FromDecodeError(err), requestID)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), in)
	if err != nil {
		response.FromDomainError(c, err, requestID)
		return
	}
	response.Created(c, dto.BookingFromDomain(booking))
}

// Get returns a single booking.
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.BookingFromDomain(booking))
}

// List returns bookings, optionally filtered.
// GET /api/v1/bookings?room=&date=&userId=
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context(),
		c.Query("room"), c.Query("date"), c.Query("userId"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.BookingsFromDomain(bookings))
}

// Availability returns the reservations of one room on one date.
// GET /api/v1/rooms/:room/bookings?date=
func (h *BookingHandler) Availability(c *gin.Context) {
	avail, err := h.bookingService.Availability(c.Request.Context(), c.Param("room"), c.Query("date"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.AvailabilityResponse{
		Room:     string(avail.Room),
		Date:     avail.Date,
		Bookings: dto.BookingsFromDomain(avail.Bookings),
	})
}

// Rooms lists the rooms and meeting types a booking may name.
// GET /api/v1/rooms
func (h *BookingHandler) Rooms(c *gin.Context) {
	response.OK(c, dto.RoomsFromDomain())
}

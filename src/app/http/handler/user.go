package handler

import (
	"github.com/gin-gonic/gin"

	"roombooking/src/app/http/dto"
	"roombooking/src/app/http/response"
	"roombooking/src/app/middleware"
	"roombooking/src/core/schema"
	"roombooking/src/core/usecase"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	userService *usecase.UserService
}

func NewUserHandler(userService *usecase.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a user.
// POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var in schema.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.FromDomainError(c, schema.FromDecodeError(err), requestID)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), in)
	if err != nil {
		response.FromDomainError(c, err, requestID)
		return
	}
	response.Created(c, dto.UserFromDomain(user))
}

// Get returns a user without credentials.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.UserFromDomain(user))
}

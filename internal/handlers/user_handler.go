package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpsertUserRequest represents the request payload for creating or updating a user.
// The ID comes from the external identity provider.
type UpsertUserRequest struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UpsertUser handles create-or-update of a user record
// @Summary     Create or update a user
// @Description Create a user on first login, or refresh email/name on subsequent logins
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body UpsertUserRequest true "User details"
// @Success     200 {object} models.User "User record"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Router      /api/users [post]
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpsertUser(c.Request.Context(), req.ID, req.Email, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

// UserKey is the echo context key the Auth middleware stores the user id under.
const UserKey = "user_id"

type UserHandler struct {
	users ports.AuthRepository
}

func NewUserHandler(users ports.AuthRepository) *UserHandler {
	return &UserHandler{users: users}
}

type meResponse struct {
	FoundUser *domain.PublicUser `json:"foundUser"`
}

// Me returns the authenticated user without the password.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  meResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, _ := c.Get(UserKey).(string)
	if id == "" {
		return errorJSON(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return errorJSON(c, http.StatusUnauthorized, domain.ErrUnauthorized)
		}
		return err
	}
	return c.JSON(http.StatusOK, meResponse{FoundUser: user.Public()})
}

package handlers

import (
	"net/http"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the authenticated user
type UserHandler struct {
	cascader *services.Cascader
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(cascader *services.Cascader) *UserHandler {
	return &UserHandler{cascader: cascader}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.DELETE("/users/me", h.DeleteMe)
}

// GetMe returns the authenticated user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	acting := actingUser(c)
	if acting == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": acting})
}

// DeleteMe deletes the authenticated user's account, cascading to their
// posts, comments and likes.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	acting := actingUser(c)
	if acting == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	if err := h.cascader.DeleteUser(c.Request().Context(), acting); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User got deleted."})
}

// actingUser pulls the user resolved by the authentication middleware off
// the request context.
func actingUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}

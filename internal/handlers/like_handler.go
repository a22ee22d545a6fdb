package handlers

import (
	"net/http"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	reactions *services.ReactionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(reactions *services.ReactionService) *LikeHandler {
	return &LikeHandler{reactions: reactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:postId/likes", h.LikePost)
	g.POST("/comments/:commentId/likes", h.LikeComment)
}

// LikePost toggles the authenticated user's like on a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	return h.handleLike(c, models.TargetRef{Kind: models.TargetPost, ID: c.Param("postId")})
}

// LikeComment toggles the authenticated user's like on a comment
func (h *LikeHandler) LikeComment(c echo.Context) error {
	return h.handleLike(c, models.TargetRef{Kind: models.TargetComment, ID: c.Param("commentId")})
}

func (h *LikeHandler) handleLike(c echo.Context, ref models.TargetRef) error {
	doc, created, err := h.reactions.HandleLike(c.Request().Context(), ref, actingUser(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"document": doc})
}

package handlers

import (
	"net/http"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:postId/comments", h.CreateComment)
	g.GET("/posts/:postId/comments", h.GetComments)
	g.GET("/comments/:commentId", h.GetComment)
	g.PATCH("/comments/:commentId", h.UpdateComment)
	g.DELETE("/comments/:commentId", h.DeleteComment)
}

// CreateComment creates a new comment on an existing post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, post, err := h.content.CreateComment(c.Request().Context(), req.Content, c.Param("postId"), actingUser(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": post, "comment": comment})
}

// GetComments returns a post together with all its comments
func (h *CommentHandler) GetComments(c echo.Context) error {
	post, comments, err := h.content.GetComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post, "comments": comments})
}

// GetComment returns a comment with its user and post resolved
func (h *CommentHandler) GetComment(c echo.Context) error {
	comment, err := h.content.GetComment(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

// UpdateComment replaces the content of an owned comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.content.UpdateComment(c.Request().Context(), req.Content, c.Param("commentId"), actingUser(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

// DeleteComment deletes an owned comment and its likes
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.content.DeleteComment(c.Request().Context(), c.Param("commentId"), actingUser(c)); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted."})
}

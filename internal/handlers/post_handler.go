package handlers

import (
	"net/http"

	"github.com/jkask/blabber/backend/internal/apperr"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:postId", h.GetPost)
	g.PATCH("/posts/:postId", h.UpdatePost)
	g.DELETE("/posts/:postId", h.DeletePost)
}

// CreatePost creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), req.Title, req.Content, actingUser(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": post})
}

// GetPosts returns one page of posts matching the search query
func (h *PostHandler) GetPosts(c echo.Context) error {
	q := models.ParsePostSearchQuery(
		c.QueryParam("q"),
		c.QueryParam("sortBy"),
		c.QueryParam("direction"),
		c.QueryParam("page"),
		c.QueryParam("limit"),
	)
	page, err := h.content.SearchPosts(c.Request().Context(), q)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetPost returns a post with its user, comments and likes resolved
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.content.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// UpdatePost updates the title and/or content of an owned post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.UpdatePost(c.Request().Context(), c.Param("postId"), req, actingUser(c))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// DeletePost deletes an owned post and everything attached to it
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.content.DeletePost(c.Request().Context(), c.Param("postId"), actingUser(c)); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post got deleted."})
}

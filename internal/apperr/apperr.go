package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is a domain error carrying the HTTP status it maps to at the edge.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

// BadRequest builds a 400 domain error
func BadRequest(message string) *Error {
	return &Error{Message: message, Status: http.StatusBadRequest}
}

// Unauthorized builds a 401 domain error
func Unauthorized(message string) *Error {
	return &Error{Message: message, Status: http.StatusUnauthorized}
}

// Sentinel domain errors shared across repositories, services and handlers.
// Malformed identifiers and missing documents map to the same client error.
var (
	ErrInvalidPostID    = BadRequest("Invalid request, no post with that id.")
	ErrPostNotFound     = BadRequest("No post found.")
	ErrInvalidCommentID = BadRequest("You must supply a correct comment to fetch.")
	ErrCommentNotFound  = BadRequest("No comment found with that id.")
	ErrInvalidTarget    = BadRequest("Like must belong to a comment or post.")
	ErrNothingToUpdate  = BadRequest("You must supply something to update.")
	ErrInvalidLogin     = BadRequest("Invalid credentials.")
	ErrNotOwner         = Unauthorized("Only the author can perform this action.")
	ErrUnauthenticated  = Unauthorized("Authentication invalid.")
)

// HTTP translates any error into the echo error the boundary responds with.
// Recognized domain errors keep their status and message; everything else
// becomes a generic 500 so no internal detail leaks.
func HTTP(err error) *echo.HTTPError {
	var de *Error
	if errors.As(err, &de) {
		return echo.NewHTTPError(de.Status, de.Message)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
}

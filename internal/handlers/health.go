package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Check is the liveness probe
func Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

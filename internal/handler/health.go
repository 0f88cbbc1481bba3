package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports service liveness for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}

// Root greets callers hitting the bare host.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to MovieCatalog.API"})
}

package handler

import (
	"accounts/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, response.HealthStatus{Status: "ok"})
}

// Package response writes the service's response bodies.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// AccessToken is the body of a successful sign-in.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}

// Username is one entry of the account listing. It deliberately has no other fields.
type Username struct {
	Username string `json:"username"`
}

// Message writes a plain-text message.
func Message(c echo.Context, statusCode int, message string) error {
	return c.String(statusCode, message)
}

// OK writes a 200 plain-text message.
func OK(c echo.Context, message string) error {
	return Message(c, http.StatusOK, message)
}

// JSON writes a 200 JSON body.
func JSON(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Empty writes a 200 with no body.
func Empty(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// ValidationFailed writes a 400 JSON object mapping field name to message.
func ValidationFailed(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, fields)
}

// Usernames converts names to listing entries, never nil.
func Usernames(names []string) []Username {
	out := make([]Username, 0, len(names))
	for _, name := range names {
		out = append(out, Username{Username: name})
	}

	return out
}

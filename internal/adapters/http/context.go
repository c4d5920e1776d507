package http

import (
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/matrix/internal/ports"
)

// ClaimsContextKey is the echo context key holding the caller's *ports.Claims
const ClaimsContextKey = "claims"

// claimsFromContext returns the verified caller, or nil on an unauthenticated route
func claimsFromContext(c echo.Context) *ports.Claims {
	claims, ok := c.Get(ClaimsContextKey).(*ports.Claims)
	if !ok {
		return nil
	}
	return claims
}

package server

import (
	"github.com/labstack/echo/v4"

	httpHandlers "github.com/taskmaster/matrix/internal/adapters/http"
	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

// requireSession resolves the caller from the session cookie and rejects
// the request with 401 when it is missing or invalid
func (s *Server) requireSession(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := authService.ResolveIdentity(c.Request().Header.Get(echo.HeaderCookie))
			if err != nil {
				if c.Request().Header.Get(echo.HeaderCookie) != "" {
					s.logger.LogSecurityEvent("invalid_session", "", c.RealIP(), map[string]interface{}{
						"endpoint": c.Request().URL.Path,
					})
				}
				return entities.ErrUnauthorized
			}

			c.Set(httpHandlers.ClaimsContextKey, claims)

			return next(c)
		}
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and open a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.CredentialsRequest true "Credentials"
// @Success 201 {object} ports.SessionResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.CredentialsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	c.SetCookie(result.Cookie)
	return c.JSON(http.StatusCreated, sessionResponse(result.User))
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and open a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.CredentialsRequest true "Credentials"
// @Success 200 {object} ports.SessionResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.CredentialsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	c.SetCookie(result.Cookie)
	return c.JSON(http.StatusOK, sessionResponse(result.User))
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} ports.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.authService.Logout())
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Logged out"})
}

// Session godoc
// @Summary Current session
// @Description Return the identity carried by the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} ports.SessionResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return entities.ErrUnauthorized
	}

	return c.JSON(http.StatusOK, ports.SessionResponse{
		User: ports.UserResponse{ID: claims.UserID, Email: claims.Email},
	})
}

func sessionResponse(user *entities.User) ports.SessionResponse {
	return ports.SessionResponse{
		User: ports.UserResponse{ID: user.ID, Email: user.Email},
	}
}

// bindBody decodes the JSON body into dst and reports malformed payloads as
// validation errors
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return &entities.Error{
			Kind:    entities.KindValidation,
			Message: "Invalid request body",
			Details: bindErrorDetails(err),
			Err:     err,
		}
	}
	return nil
}

func bindErrorDetails(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

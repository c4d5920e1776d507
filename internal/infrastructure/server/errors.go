package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// statusFor maps a domain error kind to its HTTP status
func statusFor(err error) int {
	switch entities.KindOf(err) {
	case entities.KindValidation:
		return http.StatusBadRequest
	case entities.KindUnauthorized:
		return http.StatusUnauthorized
	case entities.KindForbidden:
		return http.StatusForbidden
	case entities.KindNotFound:
		return http.StatusNotFound
	case entities.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// customErrorHandler renders every failure as {"error": ..., "details": ...}.
// Causes of internal errors are exposed in details only in debug mode.
func customErrorHandler(logger *logger.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code = http.StatusInternalServerError
			body ports.ErrorResponse
		)

		var he *echo.HTTPError
		var de *entities.Error
		switch {
		case errors.As(err, &de):
			code = statusFor(de)
			body.Error = de.Message
			body.Details = de.Details
			if code == http.StatusInternalServerError {
				body.Details = ""
				if debug && de.Err != nil {
					body.Details = de.Err.Error()
				}
			}
		case errors.As(err, &he):
			code = he.Code
			body.Error = fmt.Sprint(he.Message)
			if code == http.StatusInternalServerError && !debug {
				body.Error = http.StatusText(code)
			}
		default:
			body.Error = http.StatusText(code)
			if debug {
				body.Details = err.Error()
			}
		}

		if code >= http.StatusInternalServerError {
			logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
				WithError(err).
				Errorw("Internal server error", "path", c.Request().URL.Path, "method", c.Request().Method)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}

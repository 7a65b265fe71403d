package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

// errorResponse is the canonical error envelope: a success flag and a
// human-readable message, matching the handlers' own failure responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"message":"<text>"}.
//
// Handlers map most domain errors themselves; this catches anything that
// escapes them plus echo's own errors (bind failures, router 404s).
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes and contract messages.
	if ve, ok := domain.AsValidation(err); ok {
		return http.StatusBadRequest, ve.Message
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusNotFound, "Invalid email or password"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Email is not registerd"
	case errors.Is(err, domain.ErrWrongEmailOrAnswer):
		return http.StatusNotFound, "Wrong Email Or Answer"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Already registered, please login"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong"
}

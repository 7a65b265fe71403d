package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/api/metrics"
)

// AttemptLimiter abstracts the Redis-backed login throttle.
type AttemptLimiter interface {
	// Allow records one attempt for email and reports whether it is still
	// within the limit.
	Allow(ctx context.Context, email string) (bool, error)
}

// LoginThrottle rate-limits login attempts per email before the handler
// runs. Throttle-store failures fail open: an unavailable Redis must not
// lock every shopper out.
func LoginThrottle(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, err := peekEmail(c)
			if err != nil || email == "" {
				// Let the handler produce its own bind/validation response.
				return next(c)
			}

			allowed, err := limiter.Allow(c.Request().Context(), email)
			if err != nil {
				log.Warn().Err(err).Msg("login throttle unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginThrottledTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "Too many login attempts, please try again later",
				})
			}

			return next(c)
		}
	}
}

// peekEmail reads the email field out of the request body and restores the
// body so the handler can still bind it.
func peekEmail(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", err
	}
	return probe.Email, nil
}

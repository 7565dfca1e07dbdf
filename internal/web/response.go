// Package web holds the HTTP boundary helpers: the uniform response
// envelope and the mapping from domain error kinds to transport statuses.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/auth"
	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/policy"
	"github.com/egxsim/egxsim/internal/stocks"
)

// ErrorHandler builds the fiber error handler translating domain errors into
// the `{success:false, message}` envelope. Every policy violation resolves
// here; there are no retries or partial success responses. Outside
// development the detail of unexpected errors is suppressed.
func ErrorHandler(dev bool, logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)
		if status == http.StatusInternalServerError {
			logger.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
			if !dev {
				message = "Internal server error"
			}
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
	}
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, identity.ErrPasswordTooShort):
		return http.StatusBadRequest, "Password must be at least 8 characters"
	case errors.Is(err, identity.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, identity.ErrDuplicateEmail):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, identity.ErrNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, policy.ErrSelfAction):
		return http.StatusBadRequest, trimPrefix(err, policy.ErrSelfAction)
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden, trimPrefix(err, policy.ErrForbidden)
	case errors.Is(err, stocks.ErrDuplicateSymbol):
		return http.StatusConflict, "Stock with this symbol already exists"
	case errors.Is(err, stocks.ErrNotFound):
		return http.StatusNotFound, "Stock not found"
	case errors.Is(err, stocks.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// trimPrefix drops the sentinel's own text from a wrapped message, leaving
// the human-readable detail ("forbidden: not authorized..." -> "not
// authorized...").
func trimPrefix(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

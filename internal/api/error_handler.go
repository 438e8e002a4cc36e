package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// not found
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrMentorNotFound),
		errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound, rootMessage(err)

	// conflicts
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrAlreadySubscribed):
		return http.StatusConflict, rootMessage(err)

	// auth
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrNoToken),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrMalformedHeader):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrResolverFailure):
		return http.StatusServiceUnavailable, "identity store unavailable"

	// input
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrIncompleteProfile),
		errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, rootMessage(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// rootMessage returns the sentinel's text rather than the wrapped chain, so
// store details never reach the client.
func rootMessage(err error) string {
	for _, target := range knownErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

var knownErrors = []error{
	domain.ErrUserNotFound, domain.ErrProjectNotFound, domain.ErrCategoryNotFound,
	domain.ErrMentorNotFound, domain.ErrResourceNotFound,
	domain.ErrUserExists, domain.ErrCategoryExists, domain.ErrAlreadySubscribed,
	domain.ErrNoToken, domain.ErrInvalidToken, domain.ErrMalformedHeader,
	domain.ErrInvalidRole, domain.ErrInvalidGoal, domain.ErrInvalidAmount,
	domain.ErrInvalidResetToken, domain.ErrIncompleteProfile, domain.ErrInvalidSignature,
	domain.ErrUploadTooLarge,
}

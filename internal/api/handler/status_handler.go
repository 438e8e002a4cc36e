package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/api/metrics"
	"github.com/fundbridge/platform/internal/api/middleware"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// StatusHandler serves GET /api/auth/status, the contract the page gate
// consumes.
type StatusHandler struct {
	status ports.StatusService
	log    zerolog.Logger
}

func NewStatusHandler(status ports.StatusService, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{status: status, log: log.With().Str("component", "auth_status").Logger()}
}

// Status reports whether the bearer token is valid, the caller's role and
// whether registration is complete.
//
// @Summary      Auth status
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AuthStatus
// @Failure      401  {object}  domain.AuthStatus
// @Failure      500  {object}  domain.AuthStatus
// @Failure      503  {object}  domain.AuthStatus
// @Router       /auth/status [get]
func (h *StatusHandler) Status(c echo.Context) error {
	token, err := middleware.BearerToken(c.Request())
	if err != nil {
		return h.unauthenticated(c, err)
	}

	st, err := h.status.Status(c.Request().Context(), token)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoToken), errors.Is(err, domain.ErrInvalidToken):
		return h.unauthenticated(c, err)
	case errors.Is(err, domain.ErrResolverFailure):
		metrics.ResolverFailuresTotal.WithLabelValues(string(domain.FailClosed)).Inc()
		metrics.AuthStatusTotal.WithLabelValues("unavailable").Inc()
		return c.JSON(http.StatusServiceUnavailable, domain.AuthStatus{
			Message: "identity store unavailable",
		})
	default:
		h.log.Error().Err(err).Msg("auth status failed")
		metrics.AuthStatusTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, domain.AuthStatus{})
	}

	if st.Degraded {
		metrics.ResolverFailuresTotal.WithLabelValues(string(domain.FailOpen)).Inc()
		metrics.AuthStatusTotal.WithLabelValues("degraded").Inc()
	} else {
		metrics.AuthStatusTotal.WithLabelValues("authenticated").Inc()
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StatusHandler) unauthenticated(c echo.Context, err error) error {
	metrics.AuthStatusTotal.WithLabelValues("unauthenticated").Inc()
	msg := domain.ErrInvalidToken.Error()
	switch {
	case errors.Is(err, domain.ErrMalformedHeader):
		msg = domain.ErrMalformedHeader.Error()
	case errors.Is(err, domain.ErrNoToken):
		msg = domain.ErrNoToken.Error()
	}
	return c.JSON(http.StatusUnauthorized, domain.AuthStatus{Message: msg})
}

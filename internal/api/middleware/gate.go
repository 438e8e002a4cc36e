package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/api/metrics"
	"github.com/fundbridge/platform/internal/core/domain"
)

// HeaderPathname carries the resolved page path to the renderer.
const HeaderPathname = "X-Pathname"

// Gate decisions, used as metric labels.
const (
	decisionSkip                 = "skip"
	decisionPass                 = "pass"
	decisionRedirectLogin        = "redirect_login"
	decisionRedirectRegistration = "redirect_registration"
	decisionRedirectHome         = "redirect_home"
	decisionRedirectRole         = "redirect_role"
	decisionUnavailable          = "unavailable"
)

// StatusChecker asks the auth status endpoint about a session token.
type StatusChecker interface {
	Check(ctx context.Context, token string, cookies []*http.Cookie) (*domain.AuthStatus, error)
}

type GateConfig struct {
	Routes RouteTable
	Status StatusChecker
	Cookie CookieConfig
	Log    zerolog.Logger
}

type gate struct {
	routes RouteTable
	status StatusChecker
	cookie CookieConfig
	log    zerolog.Logger
}

// Gate guards page routes by session, registration state and role. Paths the
// route table does not match are passed through untouched.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	g := &gate{
		routes: cfg.Routes,
		status: cfg.Status,
		cookie: cfg.Cookie,
		log:    cfg.Log.With().Str("component", "gate").Logger(),
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return g.handle(c, next)
		}
	}
}

func (g *gate) handle(c echo.Context, next echo.HandlerFunc) error {
	path := c.Request().URL.Path
	if !g.routes.Matches(path) {
		metrics.GateDecisionsTotal.WithLabelValues(decisionSkip).Inc()
		return next(c)
	}

	// 1. Root always goes to login.
	if path == g.routes.Root {
		return g.redirect(c, decisionRedirectLogin, g.routes.Login)
	}

	// 2. No session.
	token := SessionToken(c, g.cookie)
	if token == "" {
		if g.routes.IsProtected(path) {
			return g.redirect(c, decisionRedirectLogin, g.routes.Login)
		}
		return g.pass(c, next, path)
	}

	// 3. Ask the status endpoint.
	status, err := g.check(c, token)
	if err != nil {
		if errors.Is(err, domain.ErrStatusTimeout) || errors.Is(err, domain.ErrStatusDegraded) {
			g.log.Warn().Err(err).Str("path", path).Msg("auth status unavailable")
			g.record(decisionUnavailable, path, "")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "authentication service unavailable, try again shortly",
			})
		}
		g.log.Warn().Err(err).Str("path", path).Msg("auth status failed, forcing login")
		ClearSessionCookie(c, g.cookie)
		return g.redirect(c, decisionRedirectLogin, g.routes.Login)
	}

	// 4. Registration incomplete beats role routing. Only the completion page
	// itself is allowed, not paths beneath it.
	if status.RegistrationIncomplete() {
		if strings.TrimSuffix(path, "/") == g.routes.CompleteRegistration {
			return g.pass(c, next, path)
		}
		return g.redirect(c, decisionRedirectRegistration, g.routes.CompleteRegistration)
	}

	// 5. Token present but not valid.
	if !status.IsAuthenticated {
		ClearSessionCookie(c, g.cookie)
		return g.redirect(c, decisionRedirectLogin, g.routes.Login)
	}

	role := domain.ParseRole(string(status.UserRole))
	family := g.routes.Classify(path)

	// 6. Signed-in users have no business on login pages.
	if family == FamilyUnauthOnly {
		return g.redirect(c, decisionRedirectHome, g.routes.Home(role))
	}

	// 7. Role confinement.
	switch role {
	case domain.RoleAdmin:
		if family != FamilyAdmin {
			return g.redirect(c, decisionRedirectRole, g.routes.Home(domain.RoleAdmin))
		}
	case domain.RoleMentor:
		if family != FamilyMentor {
			return g.redirect(c, decisionRedirectRole, g.routes.Home(domain.RoleMentor))
		}
	default:
		if family == FamilyAdmin || family == FamilyMentor {
			return g.redirect(c, decisionRedirectRole, g.routes.Home(domain.RoleNormal))
		}
	}

	// 8. Allow.
	return g.pass(c, next, path)
}

func (g *gate) check(c echo.Context, token string) (*domain.AuthStatus, error) {
	start := time.Now()
	status, err := g.status.Check(c.Request().Context(), token, c.Request().Cookies())

	result := "ok"
	switch {
	case errors.Is(err, domain.ErrStatusTimeout):
		result = "timeout"
	case errors.Is(err, domain.ErrStatusDegraded):
		result = "degraded"
	case err != nil:
		result = "unavailable"
	}
	metrics.StatusRoundTripDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return status, err
}

func (g *gate) pass(c echo.Context, next echo.HandlerFunc, path string) error {
	c.Request().Header.Set(HeaderPathname, path)
	c.Response().Header().Set(HeaderPathname, path)
	g.record(decisionPass, path, "")
	return next(c)
}

func (g *gate) redirect(c echo.Context, decision, to string) error {
	g.record(decision, c.Request().URL.Path, to)
	return c.Redirect(http.StatusTemporaryRedirect, to)
}

func (g *gate) record(decision, path, to string) {
	metrics.GateDecisionsTotal.WithLabelValues(decision).Inc()
	g.log.Debug().Str("path", path).Str("decision", decision).Str("to", to).Msg("gate decision")
}

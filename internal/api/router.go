// Package api wires the HTTP surface.
//
// @title                       FundBridge API
// @version                     1.0
// @description                 Crowdfunding platform API: auth, projects, investments and catalog.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/fundbridge/platform/internal/api/handler"
	"github.com/fundbridge/platform/internal/api/middleware"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
	_ "github.com/fundbridge/platform/internal/docs"
	"github.com/fundbridge/platform/internal/infrastructure/http/handlers"
)

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Log zerolog.Logger

	Verifier ports.TokenVerifier
	Resolver ports.RoleResolver

	Auth     ports.AuthService
	Status   ports.StatusService
	Users    ports.UserService
	Projects ports.ProjectService
	Payments ports.PaymentService
	Catalog  ports.CatalogService

	Gateway    ports.PaymentGateway
	Dispatcher handler.PaymentDispatcher

	// Gate is the status round-trip used by the page gate.
	Gate   middleware.StatusChecker
	Routes middleware.RouteTable
	Cookie middleware.CookieConfig

	RateLimit      middleware.RateLimitConfig
	// TrustedProxies lists the CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
	Readiness      map[string]handlers.Check

	// FrontendURL is where gated page requests are proxied. Empty serves a
	// JSON placeholder.
	FrontendURL string

	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	extractIP, err := middleware.IPExtractor(d.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = extractIP

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "fundbridge"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		handlerCfg.Gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	registerAPI(e, d)

	pages, err := pageHandler(d.FrontendURL)
	if err != nil {
		return nil, err
	}
	e.Any("/*", pages, middleware.Gate(middleware.GateConfig{
		Routes: d.Routes,
		Status: d.Gate,
		Cookie: d.Cookie,
		Log:    d.Log,
	}))

	return e, nil
}

func registerAPI(e *echo.Echo, d Deps) {
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	statusHandler := handler.NewStatusHandler(d.Status, d.Log)
	userHandler := handler.NewUserHandler(d.Users, d.Projects, d.Payments)
	projectHandler := handler.NewProjectHandler(d.Projects, d.Payments)
	paymentHandler := handler.NewPaymentHandler(d.Gateway, d.Dispatcher, d.Log)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)

	requireAuth := middleware.Auth(d.Verifier, d.Resolver)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	limited := middleware.RateLimit(d.RateLimit, d.Log)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, limited)
	auth.POST("/login", authHandler.Login, limited)
	auth.POST("/retrieve", authHandler.Retrieve, limited)
	auth.POST("/reset", authHandler.Reset, limited)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/status", statusHandler.Status)

	// --- Public catalog ---
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Get)
	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/mentors", catalogHandler.ListMentors)
	api.GET("/mentors/:id", catalogHandler.GetMentor)
	api.GET("/resources", catalogHandler.ListResources)
	api.GET("/testimonials", catalogHandler.ListTestimonials)

	api.POST("/payments/webhook", paymentHandler.Webhook)

	// --- Signed-in users ---
	users := api.Group("/users/me", requireAuth)
	users.GET("", userHandler.Me)
	users.PUT("", userHandler.UpdateProfile)
	users.POST("/complete-registration", userHandler.CompleteRegistration)
	users.GET("/favorites", userHandler.Favorites)
	users.GET("/investments", userHandler.Investments)

	api.POST("/projects", projectHandler.Create, requireAuth)
	api.POST("/projects/:id/favorite", projectHandler.AddFavorite, requireAuth)
	api.DELETE("/projects/:id/favorite", projectHandler.RemoveFavorite, requireAuth)
	api.POST("/projects/:id/investments", projectHandler.Invest, requireAuth)
	api.POST("/mentors/:id/subscribe", catalogHandler.Subscribe, requireAuth)
	api.POST("/testimonials", catalogHandler.CreateTestimonial, requireAuth)

	// --- Admin ---
	admin := api.Group("/admin", requireAuth, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.ChangeRole)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	admin.POST("/mentors", catalogHandler.CreateMentor)
	admin.POST("/resources", catalogHandler.CreateResource)
	admin.DELETE("/resources/:id", catalogHandler.DeleteResource)

	// Unknown API paths must not fall through to the page proxy.
	api.Any("/*", func(echo.Context) error { return echo.ErrNotFound })
}

// pageHandler serves gated page requests: a reverse proxy to the frontend
// when one is configured, the JSON placeholder otherwise.
func pageHandler(frontendURL string) (echo.HandlerFunc, error) {
	if frontendURL == "" {
		return handler.Placeholder, nil
	}

	target, err := url.Parse(frontendURL)
	if err != nil {
		return nil, fmt.Errorf("frontend url: %w", err)
	}
	proxy := echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: target}}),
	})
	return proxy(handler.Placeholder), nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

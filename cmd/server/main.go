// Command server runs the FundBridge API and the page gate in one process.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundbridge/platform/internal/api"
	"github.com/fundbridge/platform/internal/api/middleware"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/service"
	"github.com/fundbridge/platform/internal/infrastructure/authclient"
	"github.com/fundbridge/platform/internal/infrastructure/config"
	mongodb "github.com/fundbridge/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/fundbridge/platform/internal/infrastructure/db/redis"
	"github.com/fundbridge/platform/internal/infrastructure/http/handlers"
	"github.com/fundbridge/platform/internal/infrastructure/identity"
	"github.com/fundbridge/platform/internal/infrastructure/payment"
	"github.com/fundbridge/platform/internal/infrastructure/queue"
	"github.com/fundbridge/platform/internal/infrastructure/storage"
	"github.com/fundbridge/platform/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()
	srvLog := logger.For("server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		srvLog.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db)
	projects := mongodb.NewProjectRepository(db)
	investments := mongodb.NewInvestmentRepository(db)
	catalog := mongodb.NewCatalogRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, projects, investments, catalog); err != nil {
		return err
	}

	// --- External services ---
	blobs, err := storage.NewS3Store(ctx, storage.Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		MaxSize:       cfg.Storage.MaxUploadBytes,
	})
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.Currency)
	tokens := identity.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	// --- Core ---
	resolver := service.NewRoleResolver(users)
	payments := service.NewPaymentService(projects, investments, gateway, redisdb.NewDedupChecker(rdb), log)

	// Workers outlive the signal so in-flight webhooks drain during shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(cfg.PaymentWorkers, payments, log)
	dispatcher.Start(workerCtx)

	e, err := api.NewRouter(api.Deps{
		Log:        log,
		Verifier:   tokens,
		Resolver:   resolver,
		Auth:       service.NewAuthService(users, tokens, redisdb.NewResetStore(rdb, cfg.Auth.ResetTokenTTL), log),
		Status:     service.NewStatusService(tokens, resolver, domain.ResolverPolicy(cfg.Auth.ResolverPolicy), log),
		Users:      service.NewUserService(users, log),
		Projects:   service.NewProjectService(projects, users, blobs, log),
		Payments:   payments,
		Catalog:    service.NewCatalogService(catalog, users, blobs, log),
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Gate:       authclient.New(cfg.Gate.StatusURL, cfg.Gate.Timeout, cfg.Gate.Retries),
		Routes:     middleware.DefaultRouteTable(),
		Cookie: middleware.CookieConfig{
			Name:     cfg.Cookie.Name,
			MaxAge:   cfg.Cookie.MaxAge,
			Domain:   cfg.Cookie.Domain,
			Secure:   cfg.Cookie.Secure,
			HTTPOnly: cfg.Cookie.HTTPOnly,
		},
		RateLimit: middleware.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
			Burst:    cfg.RateLimit.Burst,
		},
		TrustedProxies: cfg.RateLimit.TrustedProxies,
		Readiness: map[string]handlers.Check{
			"mongo": handlers.MongoCheck(db),
			"redis": handlers.RedisCheck(rdb),
		},
		FrontendURL: cfg.Frontend.URL,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srvLog.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	srvLog.Info().Msg("server stopped cleanly")
	return nil
}

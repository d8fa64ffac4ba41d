package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shop-service/internal/api/http"
	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/queue"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
	"github.com/spec-kit/shop-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, auth.TokenTTLs{
		Access:  cfg.Auth.AccessTokenTTL(),
		Refresh: cfg.Auth.RefreshTokenTTL(),
		Reset:   cfg.Auth.PasswordResetTTL(),
	})
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)

	var resets service.ResetTokenLedger = repository.NewMemoryResetTokenLedger()
	var attempts httptransport.AttemptCounter
	if redis != nil {
		resets = repository.NewResetTokenLedger(redis.Client, "")
		attempts = repository.NewLoginAttemptStore(redis.Client, "")
	}

	dispatcher := events.NewInMemoryDispatcher()
	publisher, err := queue.New(cfg.Queue.URL, cfg.Queue.Exchange, logger)
	if err != nil {
		logger.Fatal("failed to connect queue", zap.Error(err))
	}
	notifications := service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification)
	worker.StartNotificationWorker(ctx, notifications, publisher, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      userRepo,
		Tokens:     tokens,
		Hasher:     hasher,
		Resets:     resets,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	carts := service.NewCartService(pool, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	deps := map[string]handlers.Pinger{"postgres": pg}
	if redis != nil {
		deps["redis"] = redis
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.CORS.AllowOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(service.NewUserService(pool, hasher, logger)),
		Addresses:     handlers.NewAddressesHandler(service.NewAddressService(pool, logger)),
		Catalogues:    handlers.NewCataloguesHandler(service.NewCatalogueService(pool, logger)),
		Carts:         handlers.NewCartsHandler(carts),
		CartLines:     handlers.NewCartLinesHandler(service.NewCartLineService(pool, logger), carts),
		Checkouts:     handlers.NewCheckoutsHandler(service.NewCheckoutService(pool, logger), carts),
		Offers:        handlers.NewOffersHandler(service.NewOfferService(pool, logger)),
		Vouchers:      handlers.NewVouchersHandler(service.NewVoucherService(pool, logger)),
		Wishlists:     handlers.NewWishlistsHandler(service.NewWishlistService(pool, logger)),
		Authenticator: auth.NewAuthenticator(tokens, userRepo),
		LoginLimiter: httptransport.NewLoginLimiter(attempts, cfg.RateLimit.LoginMaxAttempts,
			cfg.RateLimit.Window(), metrics, logger),
		Gatherer: registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	cancel()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

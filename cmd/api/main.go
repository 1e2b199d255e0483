package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tenant-admin/internal/api/http"
	"github.com/spec-kit/tenant-admin/internal/api/http/handlers"
	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/config"
	"github.com/spec-kit/tenant-admin/internal/events"
	"github.com/spec-kit/tenant-admin/internal/observability"
	"github.com/spec-kit/tenant-admin/internal/persistence"
	"github.com/spec-kit/tenant-admin/internal/ratelimit"
	"github.com/spec-kit/tenant-admin/internal/repository"
	"github.com/spec-kit/tenant-admin/internal/service"
	"github.com/spec-kit/tenant-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init password hasher", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	auditWorker := worker.NewAuditWorker(auditRepo, logger, 256)
	auditWorker.Register(dispatcher)
	defer auditWorker.Stop()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:         userRepo,
		MembershipRepo:   membershipRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		Dispatcher:       dispatcher,
	})
	userService := service.NewUserService(userRepo, membershipRepo, hasher, dispatcher)
	propertyService := service.NewPropertyService(propertyRepo)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	cookiePolicy := auth.CookiePolicy{
		Secure:     cfg.App.IsProduction(),
		AccessTTL:  cfg.Auth.AccessTokenTTL(),
		RefreshTTL: cfg.Auth.RefreshTokenTTL(),
	}
	loginLimiter := ratelimit.NewLoginLimiter(redis.Client, logger, cfg.Auth.LoginAttemptLimit, cfg.Auth.LoginAttemptWindow())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cookiePolicy, loginLimiter),
		Users:          handlers.NewUsersHandler(userService),
		Properties:     handlers.NewPropertiesHandler(propertyService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

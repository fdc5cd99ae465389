package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	userserver "github.com/clearsolutions/user-api/go"

	usermemory "github.com/clearsolutions/user-api/internal/domains/users/adapters/memory"
	userobs "github.com/clearsolutions/user-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/clearsolutions/user-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/clearsolutions/user-api/internal/domains/users/application"
	userports "github.com/clearsolutions/user-api/internal/domains/users/ports"
	"github.com/clearsolutions/user-api/internal/platform/migrations"
	platformobservability "github.com/clearsolutions/user-api/internal/platform/observability"
	platformpostgres "github.com/clearsolutions/user-api/internal/platform/postgres"
)

// Run boots the user HTTP API with observability and persistence wired.
func Run(ctx context.Context) error {
	const serviceName = "user-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	userRepo, cleanupRepo := buildUserRepository(ctx, cfg, logger)
	defer cleanupRepo()
	userService := userobs.New(
		userapp.NewService(userRepo, cfg.MinUserAge),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.domains.users.application")),
		userobs.WithMeter(instruments.Meter("internal.domains.users.application")),
	)

	handlers := userserver.ApiHandleFunctions{
		UserAPI: userserver.NewUserAPI(userService),
	}

	router := userserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("User API listening", slog.String("addr", addr), slog.Int("min_user_age", cfg.MinUserAge))
	if err := router.Run(addr); err != nil {
		logger.Error("User API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildUserRepository(ctx context.Context, cfg Config, logger *slog.Logger) (userports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory user repository")
		return usermemory.NewRepository(), func() {}
	}
	if err := migrations.Run(cfg.PostgresDSN); err != nil {
		logger.Warn("failed to apply migrations, falling back to memory", slog.String("error", err.Error()))
		return usermemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return usermemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return usermemory.NewRepository(), func() {}
	}
	logger.Info("user repository configured with postgres")
	return userpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

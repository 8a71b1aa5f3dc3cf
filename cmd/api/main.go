package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yedidi/warehouse-api/internal/api"
	"github.com/yedidi/warehouse-api/internal/core/service"
	mongostore "github.com/yedidi/warehouse-api/internal/infrastructure/db/mongo"
	redisstore "github.com/yedidi/warehouse-api/internal/infrastructure/db/redis"
	"github.com/yedidi/warehouse-api/internal/infrastructure/password"
	"github.com/yedidi/warehouse-api/internal/infrastructure/token"
	"github.com/yedidi/warehouse-api/internal/pkg/config"
	"github.com/yedidi/warehouse-api/pkg/logger"
)

const serviceName = "warehouse-api"

// @title                       Warehouse API
// @version                     1.0
// @description                 Product catalog with role-based access for warehouse staff.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close() //nolint:errcheck

	// --- Stores ---
	users := mongostore.NewUserRepository(db)
	products := mongostore.NewProductRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, products); err != nil {
		return err
	}
	idempotency := redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// --- Services ---
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(users, password.NewHasher(cfg.Auth.BcryptCost), tokens, logger.Named("auth"))
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:    authService,
		Catalog: service.NewCatalogService(products, idempotency, logger.Named("catalog")),
		Guard:   service.NewAccessGuard(tokens, users, logger.Named("access")),
		Logger:  logger.Named("http"),
		Mongo:   db,
		Redis:   rdb,
	})

	return serve(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, log)
}

// serve runs e on addr until ctx is cancelled or the listener fails, then
// drains in-flight requests for at most timeout.
func serve(ctx context.Context, e *echo.Echo, addr string, timeout time.Duration, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

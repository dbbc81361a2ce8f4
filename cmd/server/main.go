package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/auth-service/internal/api"
	"github.com/storefront/auth-service/internal/api/handler"
	"github.com/storefront/auth-service/internal/api/metrics"
	"github.com/storefront/auth-service/internal/core/ports"
	"github.com/storefront/auth-service/internal/core/service"
	"github.com/storefront/auth-service/internal/infrastructure/db/memory"
	"github.com/storefront/auth-service/internal/infrastructure/db/mongo"
	"github.com/storefront/auth-service/internal/infrastructure/db/redis"
	"github.com/storefront/auth-service/internal/infrastructure/lock"
	"github.com/storefront/auth-service/internal/infrastructure/password"
	"github.com/storefront/auth-service/internal/infrastructure/seed"
	"github.com/storefront/auth-service/internal/infrastructure/token"
	"github.com/storefront/auth-service/internal/pkg/config"
	"github.com/storefront/auth-service/pkg/logger"
)

const (
	serviceName     = "storefront-auth"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: serviceName})
		l.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Pretty(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := make(map[string]handler.Check)

	var repo ports.AuthRepository
	switch cfg.Store.Driver {
	case config.StoreMongo:
		mrepo, disconnect, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = disconnect(context.Background()) }()
		repo = mrepo
		checks["mongodb"] = mrepo.Ping
	default:
		repo = memory.NewUserRepository()
	}

	var locker ports.EmailLocker
	switch cfg.Store.LockDriver {
	case config.LockRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = redis.NewEmailLock(rdb, logger.For("email_lock"))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	default:
		locker = lock.NewSharded(0)
	}

	scheme, err := password.New(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}

	guests, err := seed.LoadGuests(cfg.Auth.GuestUsersFile)
	if err != nil {
		return err
	}
	if cfg.Auth.SeedDefaultUsers {
		if _, err := seed.Apply(ctx, repo, scheme, guests, logger.For("seed")); err != nil {
			return err
		}
	}

	codec := token.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		AuthService: service.NewAuthService(repo, codec, scheme, locker, metrics.Recorder{}, guests, logger.For("auth_service")),
		Guard:       service.NewAuthGuard(repo, codec, metrics.Recorder{}, logger.For("auth_guard")),
		Users:       repo,
		Checks:      checks,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Str("lock", cfg.Store.LockDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// @title           Mi Biblioteca API
// @version         1.0
// @description     Library catalog: accounts, books, loans and PDF downloads.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"github.com/rs/zerolog"

	"github.com/mibiblioteca/catalog-api/internal/api"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
	"github.com/mibiblioteca/catalog-api/internal/core/service"
	"github.com/mibiblioteca/catalog-api/internal/infrastructure/config"
	mongodb "github.com/mibiblioteca/catalog-api/internal/infrastructure/db/mongo"
	"github.com/mibiblioteca/catalog-api/internal/infrastructure/db/postgres"
	redisdb "github.com/mibiblioteca/catalog-api/internal/infrastructure/db/redis"
	"github.com/mibiblioteca/catalog-api/internal/infrastructure/http/handlers"
	"github.com/mibiblioteca/catalog-api/internal/infrastructure/storage"
	"github.com/mibiblioteca/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores groups the repositories of the selected backend.
type stores struct {
	users ports.UserRepository
	books ports.BookRepository
	loans ports.LoanRepository
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "catalog-api",
		Env:     cfg.Env,
	})

	checks := map[string]handlers.Check{}
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// --- Store ---
	var st stores
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() { _ = client.Disconnect(context.Background()) })
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		st = stores{
			users: mongodb.NewUserRepository(db),
			books: mongodb.NewBookRepository(db),
			loans: mongodb.NewLoanRepository(db),
		}
		checks["mongo"] = handlers.MongoCheck(db)
	default:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.URL})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() { _ = db.Close() })
		st = stores{
			users: postgres.NewUserRepository(db),
			books: postgres.NewBookRepository(db),
			loans: postgres.NewLoanRepository(db),
		}
		checks["postgres"] = handlers.PostgresCheck(db)
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	// --- Login throttle ---
	var limiter ports.LoginLimiter
	if cfg.LoginThrottleEnabled() {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		limiter = redisdb.NewLoginLimiter(client, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		checks["redis"] = handlers.RedisCheck(client)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttle disabled")
	}

	// --- Assets ---
	assets, err := newAssetStore(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Services ---
	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Catalog:      service.NewCatalogService(st.books, assets, logger.Component("catalog")),
		Loans:        service.NewLoanService(st.loans, logger.Component("loans")),
		Assets:       service.NewAssetService(assets),
		LoginLimiter: limiter,
		HealthChecks: checks,
		MaxUploadMB:  cfg.MaxUploadMB,
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

func newAssetStore(ctx context.Context, cfg *config.Config) (ports.AssetStore, error) {
	if cfg.Assets.Driver == config.AssetsS3 {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.Assets.S3Bucket,
			Region:    cfg.Assets.S3Region,
			Endpoint:  cfg.Assets.S3Endpoint,
			AccessKey: cfg.Assets.S3AccessKey,
			SecretKey: cfg.Assets.S3SecretKey,
		})
	}
	return storage.NewLocalStore(cfg.Assets.UploadDir)
}

type server interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

// serve runs the server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv server, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortener/internal/adapter/generator"
	"github.com/vadimbarashkov/shortener/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/shortener/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortener/internal/config"
	"github.com/vadimbarashkov/shortener/internal/entity"
	"github.com/vadimbarashkov/shortener/internal/usecase"
	"github.com/vadimbarashkov/shortener/migrations"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortener/internal/adapter/delivery/http"
	pkgpostgres "github.com/vadimbarashkov/shortener/pkg/postgres"
)

type urlRepository interface {
	Save(ctx context.Context, url entity.URL) error
	RetrieveByShortCode(ctx context.Context, shortCode entity.ShortCode) (*entity.URL, error)
	Update(ctx context.Context, url entity.URL) error
	Exists(ctx context.Context, shortCode entity.ShortCode) (bool, error)
	Remove(ctx context.Context, shortCode entity.ShortCode) error
	List(ctx context.Context) ([]entity.URL, error)
}

func newLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		RequestHeaders:  true,
		TimeFieldFormat: "2006-01-02T15:04:05Z07:00",
	}

	if env != config.EnvDev {
		opts.LogLevel = slog.LevelInfo
		opts.JSON = true
		opts.Concise = false
	}

	return httplog.NewLogger("url-shortener", opts)
}

// newURLRepository builds the storage backend selected by cfg.Storage. The
// returned cleanup releases the underlying resources.
func newURLRepository(ctx context.Context, cfg *config.Config) (urlRepository, func() error, error) {
	const op = "app.newURLRepository"

	switch cfg.Storage {
	case config.StoragePostgres:
		dsn := cfg.Postgres.DSN()

		if err := pkgpostgres.RunMigrations(migrations.FS, dsn); err != nil {
			return nil, nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		db, err := pkgpostgres.New(
			ctx,
			dsn,
			pkgpostgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			pkgpostgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			pkgpostgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			pkgpostgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}

		return postgres.NewURLRepository(db), db.Close, nil
	default:
		return memory.NewURLRepository(), func() error { return nil }, nil
	}
}

// Run wires the service from cfg and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := newLogger(cfg.Env)

	urlRepo, cleanup, err := newURLRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer cleanup()

	gen := generator.New(generator.WithShortCodeLength(cfg.ShortCodeLength))
	urlUseCase := usecase.New(
		urlRepo,
		gen,
		usecase.WithMaxGenerationAttempts(cfg.MaxGenerationAttempts),
	)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        delivery.NewRouter(logger, urlUseCase),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			slog.String("addr", server.Addr),
			slog.String("env", cfg.Env),
			slog.String("storage", cfg.Storage),
		)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error occurred", slog.Any("err", err))
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

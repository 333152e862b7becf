package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviecatalog/dynamodb"
	"moviecatalog/grpcserver"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/sentry"
	"moviecatalog/postgres"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var errMissingMovieLink = errors.New("movies.movie_link column is missing; run migrations or unset STRICT_SCHEMA")

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := sentry.Init(sentry.Options{DSN: cfg.SentryDSN, Environment: cfg.AppEnv}); err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentry.Flush()

	repo, err := newMovieRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.DB.Driver, err)
	}

	svc := movie.NewUsecase(repo)
	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithMovieService(svc),
	)
	if err != nil {
		return err
	}

	if cfg.GRPCPort != 0 {
		healthServer := grpcserver.New(fmt.Sprintf(":%d", cfg.GRPCPort), svc)
		go func() {
			slog.Info("grpc health server started!", "addr", healthServer.Addr)
			if err := healthServer.Start(); err != nil {
				slog.Error("grpc health server stopped with error", "error", err)
			}
		}()
		defer healthServer.Stop()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server started!", "addr", server.Addr, "driver", cfg.DB.Driver)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newMovieRepository(ctx context.Context, cfg *config.Config) (movie.Repository, error) {
	switch cfg.DB.Driver {
	case config.DriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		if err := dynamodb.EnsureMoviesTable(ctx, client, cfg.DynamoDB.MoviesTable); err != nil {
			return nil, err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable), nil
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:       cfg.DB.Name,
			DBUser:       cfg.DB.User,
			Password:     cfg.DB.Pass,
			Host:         cfg.DB.Host,
			Port:         fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:      cfg.DB.EnableSSL,
			MaxOpenConns: cfg.DB.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		repo := postgres.NewMovieRepository(db)
		if err := checkSchema(ctx, repo, cfg.DB.StrictSchema); err != nil {
			return nil, err
		}
		return repo, nil
	}
}

type schemaDetector interface {
	DetectSchema(ctx context.Context) (bool, error)
}

// checkSchema refuses a legacy table only in strict mode. An unreachable
// database is not fatal: the repository retries detection on first create
// and the health endpoint reports the outage.
func checkSchema(ctx context.Context, d schemaDetector, strict bool) error {
	hasLink, err := d.DetectSchema(ctx)
	if err != nil {
		slog.Warn("cannot inspect movies schema at startup", "error", err)
		return nil
	}
	if hasLink {
		return nil
	}
	if strict {
		return errMissingMovieLink
	}
	sentry.Warning("movies.movie_link column is missing, links are not stored")
	return nil
}

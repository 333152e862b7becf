package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

type flags struct {
	csvPath string
	url     string
	limit   int
}

func main() {
	var f flags
	flag.StringVar(&f.csvPath, "csv", "", "Path to a local movies.csv; skips the download")
	flag.StringVar(&f.url, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&f.limit, "limit", 0, "Import at most this many rows (0 = all)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		slog.Error("seed failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

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
		return fmt.Errorf("open postgres: %w", err)
	}

	csvPath := f.csvPath
	if csvPath == "" {
		ds, err := fetchDataset(ctx, &http.Client{Timeout: time.Minute}, f.url)
		if err != nil {
			return err
		}
		defer ds.Close()
		csvPath = ds.CSVPath
	}

	count, err := importMovies(ctx, db, csvPath, f.limit)
	if err != nil {
		return fmt.Errorf("import %s: %w", csvPath, err)
	}
	slog.Info("import completed", "rows", count)
	return nil
}

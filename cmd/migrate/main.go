package main

import (
	"flag"
	"log/slog"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"os"
	"strconv"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir  string
		down bool
		max  int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	flag.IntVar(&max, "max", 0, "Maximum number of migrations to run (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	sqlDB, err := postgres.OpenMigrationDB(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot connecting to db", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	total, err := postgres.Migrate(sqlDB, dir, direction, max)
	if err != nil {
		logger.Error("cannot execute migration", "error", err)
		sqlDB.Close()
		os.Exit(1)
	}

	logger.Info("applied migrations", "total", total, "down", down)
}

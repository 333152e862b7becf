package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviecatalog/catalog"
	"moviecatalog/pkg/config"
	"moviecatalog/webui"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	server, err := webui.New(fmt.Sprintf(":%d", cfg.Web.Port), catalog.NewClient(cfg.Web.APIURL))
	if err != nil {
		slog.Error("Cannot create web ui", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("web ui started!", "addr", server.Addr, "api", cfg.Web.APIURL)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("web ui stopped with error", "error", err)
		os.Exit(1)
	}
}

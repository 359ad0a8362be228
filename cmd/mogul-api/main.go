package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mogul/internal/api"
	"mogul/internal/config"
	"mogul/internal/game"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		logger.Error("load content failed", "err", err)
		os.Exit(1)
	}

	var opts []game.Option
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	session, err := game.NewSession(content, opts...)
	if err != nil {
		logger.Error("session init failed", "err", err)
		os.Exit(1)
	}
	session.Bus().OnGameOver(func(e game.GameOverEvent) {
		logger.Info("game over", "outcome", e.Outcome, "tick", e.Tick)
	})

	server := api.New(logger, session)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("mogul api listening", "addr", cfg.Addr, "lots", len(content.Lots))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

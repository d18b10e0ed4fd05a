package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"matchpoint/internal/api/controller"
	"matchpoint/internal/api/service"
	"matchpoint/internal/config"
	"matchpoint/internal/db"
	"matchpoint/internal/hub"
	"matchpoint/internal/logger"
	"matchpoint/internal/repository"
	"matchpoint/internal/server"
	"matchpoint/internal/session"
	"matchpoint/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := initConfig()

	shutdown, err := telemetry.Init(ctx, conf.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(conf.LogLevel, conf.Telemetry.Enabled)

	pool, err := db.Connect()
	if err != nil {
		slog.Error("failed to open round ledger database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Initialize(pool); err != nil {
		slog.Error("failed to initialize round ledger schema", "error", err)
		os.Exit(1)
	}

	resultRepo := repository.NewResultRepository(pool)

	sessions := session.NewManager(conf.SessionIdleTimeout)
	go sessions.Run(ctx)

	streamHub := hub.NewHub()
	go streamHub.Run(ctx)

	gameService := service.NewGameService(sessions, resultRepo, streamHub)
	gameController := controller.NewGameController(gameService)

	srv := server.NewServer(streamHub, gameController, gameService, conf.WebDir)

	httpServer := &http.Server{
		Addr:    ":" + conf.HTTPPort,
		Handler: srv.Engine(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("http server started", "port", conf.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}

func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return config.MustLoad(filepath.Join(baseDir, "config.yml"))
}

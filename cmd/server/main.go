package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/owenk/chessinsights/internal/api"
	"github.com/owenk/chessinsights/internal/chesscom"
	"github.com/owenk/chessinsights/internal/config"
	"github.com/owenk/chessinsights/internal/db"
	"github.com/owenk/chessinsights/internal/logger"
	"github.com/owenk/chessinsights/internal/repository/sqlite"
	"github.com/owenk/chessinsights/internal/services"
	"github.com/owenk/chessinsights/internal/stats"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Chess Insights Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("fetch_timeout_seconds=%d", cfg.FetchTimeoutSecs)
	log.Debug("max_retries=%d", cfg.MaxRetries)
	log.Debug("retry_delay_ms=%d", cfg.RetryDelayMs)
	log.Debug("requests_per_second=%g", cfg.RequestsPerSecond)
	log.Debug("accuracy_precision=%d", cfg.AccuracyPrecision)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	chessClient := chesscom.New(
		chesscom.WithBaseURL(cfg.APIBaseURL),
		chesscom.WithTimeout(time.Duration(cfg.FetchTimeoutSecs)*time.Second),
		chesscom.WithRetryPolicy(cfg.MaxRetries, time.Duration(cfg.RetryDelayMs)*time.Millisecond),
		chesscom.WithRateLimit(cfg.RequestsPerSecond, 2),
	)

	settingsRepo := sqlite.NewSettingsRepository(database.DB)
	settingsService := services.NewSettingsService(settingsRepo)
	statsService := services.NewStatsService(chessClient, stats.NewCalculator(cfg.AccuracyPrecision))

	srv := &api.Server{
		Stats:    statsService,
		Settings: settingsService,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Chess Insights Server Stopped")
	log.Info("===========================================")
}

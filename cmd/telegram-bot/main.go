package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-planner/internal/api"
	"travel-planner/internal/config"
	"travel-planner/internal/localstore"
	"travel-planner/internal/metrics"
	"travel-planner/internal/telegram"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.With().Str("service", "telegram-bot").Logger()

	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := cfg.RequireTelegram(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local store")
	}
	seen := localstore.NewSeenStore(store)

	metricsStore := metrics.NewStore()
	client := api.NewClient(cfg, logger).WithMetrics(metricsStore)

	bot, err := telegram.NewBot(cfg, client, store, seen, metricsStore, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start bot")
	}
	bot.RegisterHandlers()

	srv := &http.Server{Addr: ":8080"}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening for webhooks")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

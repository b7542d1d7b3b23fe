package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/app"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/school-site-api/shared/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development").Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.AppEnv)
	log.Info().Str("env", cfg.AppEnv).Str("backend", cfg.Provider.Backend).Msg("starting account-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize app")
	}

	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("app stopped with error")
	}

	log.Info().Msg("account-service stopped gracefully")
}

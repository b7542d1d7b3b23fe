package main

import (
	"context"
	"os"
	"time"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/app"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/cli"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewWithWriter("development", os.Stderr).Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.NewWithWriter(cfg.AppEnv, os.Stderr)

	ctx := context.Background()

	backend, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open provider backend")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close provider backend")
		}
	}()

	console := cli.NewApp(cli.Params{
		Auth: backend.NewAuth(),
		Account: usecase.AccountDeps{
			Profiles:            repository.NewProfileRepository(backend.Store()),
			Translator:          i18n.MustNew(cfg.Locale),
			AdminEnrollmentCode: cfg.Site.AdminEnrollmentCode,
			Logger:              log,
		},
		In:  os.Stdin,
		Out: os.Stdout,
	})

	console.Run(ctx)
}

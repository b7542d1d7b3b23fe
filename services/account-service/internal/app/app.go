package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/handler"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/mailer"
	"github.com/vasapolrittideah/school-site-api/shared/utilities"
)

const serviceName = "account-service"

// App is the account service HTTP server.
type App struct {
	server    *http.Server
	logger    *zerolog.Logger
	backend   *Backend
	registrar *utilities.ConsulRegistrar
	serviceID string
}

// New opens the backend and builds the HTTP server described by cfg.
func New(ctx context.Context, cfg *config.AccountServiceConfig, logger *zerolog.Logger) (*App, error) {
	translator, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	sender, err := newSender(logger)
	if err != nil {
		return nil, err
	}

	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store := backend.Store()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h, err := handler.New(handler.Params{
		Account: usecase.AccountDeps{
			Profiles:            repository.NewProfileRepository(store),
			Translator:          translator,
			AdminEnrollmentCode: cfg.Site.AdminEnrollmentCode,
			Logger:              logger,
		},
		Site: usecase.NewSiteUsecase(usecase.SiteDeps{
			Contacts:   repository.NewContactRepository(store),
			Newsletter: repository.NewNewsletterRepository(store),
			Sender:     sender,
			Recipient:  cfg.Site.ContactRecipient,
			SiteName:   cfg.Site.Name,
			Translator: translator,
			Logger:     logger,
		}),
		Metrics:  handler.NewMetrics(registry),
		SiteName: cfg.Site.Name,
	})
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}

	trusted, err := cfg.Limit.TrustedPrefixes()
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}

	router := handler.NewRouter(h, handler.RouterParams{
		Backend:        backend,
		Gatherer:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: trusted,
		RatePerSecond:  cfg.Limit.PerSecond,
		RateBurst:      cfg.Limit.Burst,
	})

	a := &App{
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:  logger,
		backend: backend,
	}

	if cfg.Consul.Addr != "" {
		registrar, err := utilities.NewConsulRegistrar(cfg.Consul.Addr)
		if err != nil {
			_ = backend.Close(ctx)
			return nil, err
		}
		a.registrar = registrar
		a.serviceID = fmt.Sprintf("%s-%s", serviceName, uuid.NewString())
	}

	return a, nil
}

func newSender(logger *zerolog.Logger) (mailer.Sender, error) {
	mailCfg, err := mailer.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !mailCfg.Enabled() {
		logger.Warn().Msg("SMTP is not configured, contact messages are stored only")
		return mailer.Discard{}, nil
	}

	m, err := mailer.NewMailer(mailCfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Run serves HTTP until ctx is done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.register(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("address", a.server.Addr).Msg("HTTP server starting")
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		a.logger.Info().Msg("shutting down HTTP server gracefully")
		runErr = a.server.Shutdown(timeoutCtx)
	}

	if a.registrar != nil {
		if err := a.registrar.Deregister(a.serviceID); err != nil {
			a.logger.Error().Err(err).Msg("failed to deregister from consul")
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return errors.Join(runErr, a.backend.Close(closeCtx))
}

func (a *App) register() error {
	if a.registrar == nil {
		return nil
	}

	if err := a.registrar.Register(utilities.ServiceRegistration{
		ID:         a.serviceID,
		Name:       serviceName,
		Address:    a.server.Addr,
		Tags:       []string{"http"},
		HealthPath: "/healthz",
	}); err != nil {
		return err
	}

	a.logger.Info().Str("service_id", a.serviceID).Msg("registered with consul")

	return nil
}

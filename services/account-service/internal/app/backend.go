// Package app wires the account service's dependencies together.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
	"github.com/vasapolrittideah/school-site-api/shared/provider/memstore"
	"github.com/vasapolrittideah/school-site-api/shared/provider/mongostore"
	"github.com/vasapolrittideah/school-site-api/shared/provider/revocation"
)

// Backend is an opened provider backend together with the clients it owns.
type Backend struct {
	provider.Backend
	redis *redis.Client
}

// OpenBackend opens the provider backend selected by cfg.Provider.Backend.
func OpenBackend(ctx context.Context, cfg *config.AccountServiceConfig, logger *zerolog.Logger) (*Backend, error) {
	tokens := provider.TokenConfig{
		Secret:    cfg.Token.Secret,
		Issuer:    cfg.Token.Issuer,
		ExpiresIn: cfg.Token.ExpiresIn,
	}

	var google provider.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google = provider.NewGoogleOAuthProvider(cfg.Google.ClientID)
	}

	switch cfg.Provider.Backend {
	case config.BackendMemory:
		logger.Warn().Msg("using in-memory provider backend, data is lost on exit")

		var opts []memstore.Option
		if google != nil {
			opts = append(opts, memstore.WithGoogleVerifier(google))
		}
		return &Backend{Backend: memstore.New(tokens, opts...)}, nil

	case config.BackendMongo:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Provider.RedisAddr,
			Password: cfg.Provider.RedisPassword,
			DB:       cfg.Provider.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		backend, err := mongostore.Connect(ctx, logger, mongostore.Params{
			URI:          cfg.Provider.MongoURI,
			Database:     cfg.Provider.MongoDatabase,
			Tokens:       tokens,
			Revocations:  revocation.NewRedisStore(rdb),
			GoogleVerify: google,
		})
		if err != nil {
			_ = rdb.Close()
			return nil, err
		}

		logger.Info().
			Str("database", cfg.Provider.MongoDatabase).
			Str("redis", cfg.Provider.RedisAddr).
			Msg("connected to provider backend")

		return &Backend{Backend: backend, redis: rdb}, nil
	}

	return nil, fmt.Errorf("unsupported provider backend %q", cfg.Provider.Backend)
}

// Close releases the backend and its Redis client.
func (b *Backend) Close(ctx context.Context) error {
	err := b.Backend.Close(ctx)
	if b.redis != nil {
		err = errors.Join(err, b.redis.Close())
	}
	return err
}

// Package mongostore is the MongoDB-backed provider: identities and
// documents live in one database, revoked ID tokens in Redis.
package mongostore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
	"github.com/vasapolrittideah/school-site-api/shared/provider/revocation"
	"github.com/vasapolrittideah/school-site-api/shared/security"
)

// Backend is a provider.Backend on MongoDB.
type Backend struct {
	client     *mongo.Client
	identities provider.IdentityStore
	store      provider.Store
	tokens     *provider.TokenIssuer
	hasher     *security.PasswordHasher
	google     provider.GoogleVerifier
}

// Params holds what New needs to build the backend.
type Params struct {
	URI          string
	Database     string
	Tokens       provider.TokenConfig
	Revocations  revocation.Store
	Hasher       *security.PasswordHasher
	GoogleVerify provider.GoogleVerifier
}

// Connect dials MongoDB, pings it and builds the backend.
func Connect(ctx context.Context, logger *zerolog.Logger, params Params) (*Backend, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(params.URI))
	if err != nil {
		return nil, fmt.Errorf("mongostore.Connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongostore.Connect: ping: %w", err)
	}

	b := New(ctx, logger, client.Database(params.Database), params)
	b.client = client

	return b, nil
}

// New builds the backend on an existing database handle.
func New(ctx context.Context, logger *zerolog.Logger, db *mongo.Database, params Params) *Backend {
	hasher := params.Hasher
	if hasher == nil {
		hasher = security.DefaultPasswordHasher()
	}

	return &Backend{
		identities: NewIdentityMongoRepository(ctx, logger, db),
		store:      NewDocumentMongoStore(db),
		tokens:     provider.NewTokenIssuer(params.Tokens, params.Revocations),
		hasher:     hasher,
		google:     params.GoogleVerify,
	}
}

func (b *Backend) NewAuth() provider.Auth {
	return provider.NewAuthenticator(b.identities, b.tokens, b.hasher, b.google)
}

func (b *Backend) Store() provider.Store {
	return b.store
}

func (b *Backend) Close(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	return b.client.Disconnect(ctx)
}

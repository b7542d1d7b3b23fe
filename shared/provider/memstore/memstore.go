// Package memstore is an in-process provider backend for development and
// tests. Documents are kept bson-encoded so they decode exactly like documents
// read from MongoDB.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
	"github.com/vasapolrittideah/school-site-api/shared/provider/revocation"
	"github.com/vasapolrittideah/school-site-api/shared/security"
)

// Backend is an in-memory provider.Backend.
type Backend struct {
	mu         sync.RWMutex
	identities map[string]*provider.IdentityRecord
	byEmail    map[string]string
	documents  map[string]map[string]bson.Raw

	tokens *provider.TokenIssuer
	hasher *security.PasswordHasher
	google provider.GoogleVerifier
}

// Option configures a Backend.
type Option func(*Backend)

// WithGoogleVerifier enables Google sign-in.
func WithGoogleVerifier(verifier provider.GoogleVerifier) Option {
	return func(b *Backend) {
		b.google = verifier
	}
}

// WithPasswordHasher overrides the light default hasher.
func WithPasswordHasher(hasher *security.PasswordHasher) Option {
	return func(b *Backend) {
		b.hasher = hasher
	}
}

// New creates an empty in-memory backend.
func New(tokenConfig provider.TokenConfig, opts ...Option) *Backend {
	b := &Backend{
		identities: make(map[string]*provider.IdentityRecord),
		byEmail:    make(map[string]string),
		documents:  make(map[string]map[string]bson.Raw),
		tokens:     provider.NewTokenIssuer(tokenConfig, revocation.NewMemoryStore()),
		hasher:     security.LightPasswordHasher(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Backend) NewAuth() provider.Auth {
	return provider.NewAuthenticator(b, b.tokens, b.hasher, b.google)
}

func (b *Backend) Store() provider.Store {
	return b
}

func (b *Backend) Close(context.Context) error {
	return nil
}

func (b *Backend) CreateIdentity(_ context.Context, rec *provider.IdentityRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byEmail[rec.Email]; ok {
		return provider.NewError(provider.CodeEmailAlreadyInUse, "the email address is already in use by another account")
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	stored := *rec
	b.identities[rec.UID] = &stored
	b.byEmail[rec.Email] = rec.UID

	return nil
}

func (b *Backend) GetIdentity(_ context.Context, uid string) (*provider.IdentityRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.identities[uid]
	if !ok {
		return nil, userNotFound()
	}

	c := *rec
	return &c, nil
}

func (b *Backend) GetIdentityByEmail(_ context.Context, email string) (*provider.IdentityRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	uid, ok := b.byEmail[email]
	if !ok {
		return nil, userNotFound()
	}

	c := *b.identities[uid]
	return &c, nil
}

func (b *Backend) UpdateIdentity(_ context.Context, uid string, params provider.UpdateIdentityParams) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.identities[uid]
	if !ok {
		return userNotFound()
	}

	if params.DisplayName != nil {
		rec.DisplayName = *params.DisplayName
	}
	if params.LastSignInAt != nil {
		rec.LastSignInAt = *params.LastSignInAt
	}
	if params.Disabled != nil {
		rec.Disabled = *params.Disabled
	}
	rec.UpdatedAt = time.Now()

	return nil
}

func (b *Backend) DeleteIdentity(_ context.Context, uid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.identities[uid]
	if !ok {
		return userNotFound()
	}

	delete(b.byEmail, rec.Email)
	delete(b.identities, uid)

	return nil
}

func (b *Backend) Get(_ context.Context, collection, id string) (*provider.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	raw, ok := b.documents[collection][id]
	if !ok {
		return nil, documentNotFound()
	}

	return &provider.Snapshot{ID: id, Raw: cloneRaw(raw)}, nil
}

func (b *Backend) Set(_ context.Context, collection, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to encode document", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.documents[collection] == nil {
		b.documents[collection] = make(map[string]bson.Raw)
	}
	b.documents[collection][id] = raw

	return nil
}

func (b *Backend) Update(_ context.Context, collection, id string, fields map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, ok := b.documents[collection][id]
	if !ok {
		return documentNotFound()
	}

	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to decode document", err)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		doc = setField(doc, key, fields[key])
	}

	updated, err := bson.Marshal(doc)
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to encode document", err)
	}
	b.documents[collection][id] = updated

	return nil
}

func (b *Backend) List(_ context.Context, collection string) ([]*provider.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.documents[collection]))
	for id := range b.documents[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snapshots := make([]*provider.Snapshot, 0, len(ids))
	for _, id := range ids {
		snapshots = append(snapshots, &provider.Snapshot{
			ID:  id,
			Raw: cloneRaw(b.documents[collection][id]),
		})
	}

	return snapshots, nil
}

func setField(doc bson.D, key string, value any) bson.D {
	for i := range doc {
		if doc[i].Key == key {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: value})
}

func cloneRaw(raw bson.Raw) bson.Raw {
	c := make(bson.Raw, len(raw))
	copy(c, raw)
	return c
}

func userNotFound() error {
	return provider.NewError(provider.CodeUserNotFound, "there is no user record corresponding to this identifier")
}

func documentNotFound() error {
	return provider.NewError(provider.CodeNotFound, "document not found")
}

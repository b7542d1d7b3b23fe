package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

const identityCollection = "identities"

type identityMongoRepository struct {
	db *mongo.Database
}

// NewIdentityMongoRepository creates the identity store and its indexes.
func NewIdentityMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) provider.IdentityStore {
	collection := db.Collection(identityCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "google_subject", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create identity indexes")
	}

	return &identityMongoRepository{db: db}
}

func (r *identityMongoRepository) CreateIdentity(ctx context.Context, rec *provider.IdentityRecord) error {
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := r.db.Collection(identityCollection).InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return provider.NewError(
				provider.CodeEmailAlreadyInUse,
				"the email address is already in use by another account",
			)
		}
		return provider.WrapError(provider.CodeInternal, "failed to create identity", err)
	}

	return nil
}

func (r *identityMongoRepository) GetIdentity(ctx context.Context, uid string) (*provider.IdentityRecord, error) {
	return r.findOne(ctx, bson.M{"_id": uid})
}

func (r *identityMongoRepository) GetIdentityByEmail(
	ctx context.Context,
	email string,
) (*provider.IdentityRecord, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *identityMongoRepository) UpdateIdentity(
	ctx context.Context,
	uid string,
	params provider.UpdateIdentityParams,
) error {
	// Build update query
	updateMap := bson.M{}
	if params.DisplayName != nil {
		updateMap["display_name"] = *params.DisplayName
	}
	if params.LastSignInAt != nil {
		updateMap["last_sign_in_at"] = *params.LastSignInAt
	}
	if params.Disabled != nil {
		updateMap["disabled"] = *params.Disabled
	}

	if len(updateMap) == 0 {
		return provider.NewError(provider.CodeInternal, "no identity fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result, err := r.db.Collection(identityCollection).UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": updateMap},
	)
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to update identity", err)
	}

	if result.MatchedCount == 0 {
		return userNotFound()
	}

	return nil
}

func (r *identityMongoRepository) DeleteIdentity(ctx context.Context, uid string) error {
	result, err := r.db.Collection(identityCollection).DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to delete identity", err)
	}

	if result.DeletedCount == 0 {
		return userNotFound()
	}

	return nil
}

func (r *identityMongoRepository) findOne(ctx context.Context, filter bson.M) (*provider.IdentityRecord, error) {
	var rec provider.IdentityRecord
	err := r.db.Collection(identityCollection).FindOne(ctx, filter).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userNotFound()
		}
		return nil, provider.WrapError(provider.CodeInternal, "failed to read identity", err)
	}

	return &rec, nil
}

func userNotFound() error {
	return provider.NewError(provider.CodeUserNotFound, "there is no user record corresponding to this identifier")
}

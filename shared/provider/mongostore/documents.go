package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

type documentMongoStore struct {
	db *mongo.Database
}

// NewDocumentMongoStore creates a provider.Store where each collection maps to
// a MongoDB collection and the document id is stored as _id.
func NewDocumentMongoStore(db *mongo.Database) provider.Store {
	return &documentMongoStore{db: db}
}

func (s *documentMongoStore) Get(ctx context.Context, collection, id string) (*provider.Snapshot, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, provider.NewError(provider.CodeNotFound, "document not found")
		}
		return nil, provider.WrapError(provider.CodeInternal, "failed to read document", err)
	}

	return &provider.Snapshot{ID: id, Raw: raw}, nil
}

func (s *documentMongoStore) Set(ctx context.Context, collection, id string, doc any) error {
	// On upsert the _id is taken from the filter.
	_, err := s.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{"_id": id},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to write document", err)
	}

	return nil
}

func (s *documentMongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result, err := s.db.Collection(collection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		return provider.WrapError(provider.CodeInternal, "failed to update document", err)
	}

	if result.MatchedCount == 0 {
		return provider.NewError(provider.CodeNotFound, "document not found")
	}

	return nil
}

func (s *documentMongoStore) List(ctx context.Context, collection string) ([]*provider.Snapshot, error) {
	cursor, err := s.db.Collection(collection).Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, provider.WrapError(provider.CodeInternal, "failed to list documents", err)
	}
	defer cursor.Close(ctx)

	var snapshots []*provider.Snapshot
	for cursor.Next(ctx) {
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)

		id, ok := raw.Lookup("_id").StringValueOK()
		if !ok {
			continue
		}

		snapshots = append(snapshots, &provider.Snapshot{ID: id, Raw: raw})
	}

	if err := cursor.Err(); err != nil {
		return nil, provider.WrapError(provider.CodeInternal, "failed to list documents", err)
	}

	return snapshots, nil
}

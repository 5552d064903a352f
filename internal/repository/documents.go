package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "volunflow/internal/errors"
)

// DocumentRepository is the store contract every higher layer goes through:
// filter/projection/sort/paginated queries against a named collection.
// Implementations own per-document atomicity; there are no multi-document
// transactions anywhere in the service.
type DocumentRepository interface {
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)
	Find(ctx context.Context, collection string, filter, projection bson.M, skip, limit int64) ([]bson.M, error)
	UpdateOne(ctx context.Context, collection string, filter, update bson.M) (matched, modified int64, err error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (deleted int64, err error)
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
}

type documentRepository struct {
	db *mongo.Database
}

// NewDocumentRepository builds a Mongo-backed document repository.
func NewDocumentRepository(db *mongo.Database) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *documentRepository) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := r.db.Collection(collection).FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Find returns the window [skip, skip+limit) of the filtered set, newest
// first (_id descending tracks insertion recency).
func (r *documentRepository) Find(ctx context.Context, collection string, filter, projection bson.M, skip, limit int64) ([]bson.M, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	if len(projection) > 0 {
		opts.SetProjection(projection)
	}

	cur, err := r.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, int64, error) {
	res, err := r.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *documentRepository) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := r.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *documentRepository) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return r.db.Collection(collection).CountDocuments(ctx, filter)
}

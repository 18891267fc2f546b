// internal/app/store/media/mediastore.go
package mediastore

import (
	"context"
	"time"

	"github.com/dalemusser/churchhub/internal/app/system/normalize"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("media")}
}

func (s *Store) Create(ctx context.Context, m models.Media) (models.Media, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.Tags = normalize.Tags(m.Tags)
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Media{}, err
	}
	return m, nil
}

// GetByID returns mongo.ErrNoDocuments if the item does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Media, error) {
	var m models.Media
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Media{}, err
	}
	return m, nil
}

// Find returns media matching filter, newest first.
func (s *Store) Find(ctx context.Context, filter bson.M, limit int64) ([]models.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Media{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindPublic returns public media from every church, optionally of one type.
func (s *Store) FindPublic(ctx context.Context, mediaType string, limit int64) ([]models.Media, error) {
	filter := bson.M{"is_public": true}
	if mediaType != "" {
		filter["type"] = mediaType
	}
	return s.Find(ctx, filter, limit)
}

// Save replaces the stored item with m.
func (s *Store) Save(ctx context.Context, m models.Media) (models.Media, error) {
	m.Tags = normalize.Tags(m.Tags)
	m.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return models.Media{}, err
	}
	if res.MatchedCount == 0 {
		return models.Media{}, mongo.ErrNoDocuments
	}
	return m, nil
}

// Delete removes an item by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of items matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// internal/app/store/announcements/announcementstore.go
package announcementstore

import (
	"context"
	"time"

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
	return &Store{c: db.Collection("announcements")}
}

// Create inserts a. An empty priority becomes normal.
func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Priority == "" {
		a.Priority = models.PriorityNormal
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// GetByID returns mongo.ErrNoDocuments if the announcement does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Announcement, error) {
	var a models.Announcement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// ListOptions narrows ListByChurch.
type ListOptions struct {
	// IncludeExpired also returns announcements whose expiry has passed.
	IncludeExpired bool
	// Now is the reference time for expiry. Zero means time.Now().
	Now   time.Time
	Limit int64
}

// ListByChurch returns a church's announcements, pinned first, then newest.
func (s *Store) ListByChurch(ctx context.Context, church primitive.ObjectID, o ListOptions) ([]models.Announcement, error) {
	filter := bson.M{"church": church}
	if !o.IncludeExpired {
		now := o.Now
		if now.IsZero() {
			now = time.Now()
		}
		filter["$or"] = []bson.M{
			{"expires_at": bson.M{"$exists": false}},
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": now.UTC()}},
		}
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "pinned", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if o.Limit > 0 {
		opts.SetLimit(o.Limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Announcement{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored announcement with a.
func (s *Store) Save(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return models.Announcement{}, err
	}
	if res.MatchedCount == 0 {
		return models.Announcement{}, mongo.ErrNoDocuments
	}
	return a, nil
}

// Delete removes an announcement by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

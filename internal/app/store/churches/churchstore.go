// internal/app/store/churches/churchstore.go
package churchstore

import (
	"context"
	"time"

	"github.com/dalemusser/churchhub/internal/app/system/normalize"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("churches")}
}

// Create inserts c with a fresh id. Members is never stored as null.
func (s *Store) Create(ctx context.Context, c models.Church) (models.Church, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	if c.Members == nil {
		c.Members = []primitive.ObjectID{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Church{}, err
	}
	return c, nil
}

// GetByID returns mongo.ErrNoDocuments if the church does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Church, error) {
	var c models.Church
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Church{}, err
	}
	return c, nil
}

// Find lists churches sorted by name, optionally limited to one denomination.
func (s *Store) Find(ctx context.Context, denomination string) ([]models.Church, error) {
	filter := bson.M{}
	if denomination != "" {
		filter["denomination"] = denomination
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Church{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored church with c.
func (s *Store) Save(ctx context.Context, c models.Church) (models.Church, error) {
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	if c.Members == nil {
		c.Members = []primitive.ObjectID{}
	}
	c.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return models.Church{}, err
	}
	if res.MatchedCount == 0 {
		return models.Church{}, mongo.ErrNoDocuments
	}
	return c, nil
}

// Delete removes a church by ID. Documents referencing it are left in place.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddMember adds user to the church's members if absent and returns the
// updated church.
func (s *Store) AddMember(ctx context.Context, id, user primitive.ObjectID) (models.Church, error) {
	return s.updateMembers(ctx, id, bson.M{"$addToSet": bson.M{"members": user}})
}

// RemoveMember removes user from the church's members. Removing a non-member
// is a no-op.
func (s *Store) RemoveMember(ctx context.Context, id, user primitive.ObjectID) (models.Church, error) {
	return s.updateMembers(ctx, id, bson.M{"$pull": bson.M{"members": user}})
}

func (s *Store) updateMembers(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Church, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Church
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c); err != nil {
		return models.Church{}, err
	}
	return c, nil
}

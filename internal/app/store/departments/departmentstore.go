// internal/app/store/departments/departmentstore.go
package departmentstore

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
	return &Store{c: db.Collection("departments")}
}

func (s *Store) Create(ctx context.Context, d models.Department) (models.Department, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.Name = normalize.Name(d.Name)
	d.NameCI = text.Fold(d.Name)
	if d.Members == nil {
		d.Members = []primitive.ObjectID{}
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Department{}, err
	}
	return d, nil
}

// GetByID returns mongo.ErrNoDocuments if the department does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Department, error) {
	var d models.Department
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Department{}, err
	}
	return d, nil
}

// Find returns departments matching filter sorted by name.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Department{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored department with d.
func (s *Store) Save(ctx context.Context, d models.Department) (models.Department, error) {
	d.Name = normalize.Name(d.Name)
	d.NameCI = text.Fold(d.Name)
	if d.Members == nil {
		d.Members = []primitive.ObjectID{}
	}
	d.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return models.Department{}, err
	}
	if res.MatchedCount == 0 {
		return models.Department{}, mongo.ErrNoDocuments
	}
	return d, nil
}

// Delete removes a department by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByChurch returns the number of departments in a church.
func (s *Store) CountByChurch(ctx context.Context, church primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"church": church})
}

// AddMember adds user to members if absent.
func (s *Store) AddMember(ctx context.Context, id, user primitive.ObjectID) (models.Department, error) {
	return s.update(ctx, id, bson.M{"$addToSet": bson.M{"members": user}})
}

// RemoveMember removes user from members. Removing a non-member is a no-op.
func (s *Store) RemoveMember(ctx context.Context, id, user primitive.ObjectID) (models.Department, error) {
	return s.update(ctx, id, bson.M{"$pull": bson.M{"members": user}})
}

func (s *Store) update(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Department, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Department
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&d); err != nil {
		return models.Department{}, err
	}
	return d, nil
}

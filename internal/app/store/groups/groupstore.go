// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
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

var (
	// ErrSoleAdmin is returned by Leave when the caller is the group's only admin.
	ErrSoleAdmin = errors.New("you are the only admin; assign another admin before leaving")
	// ErrBadPrivacy is returned for a privacy value other than public, private, or secret.
	ErrBadPrivacy = errors.New(`privacy must be "public"|"private"|"secret"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// Create inserts g with its creator as the first member and admin.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.Privacy = normalize.Privacy(g.Privacy)
	if !models.IsValidPrivacy(g.Privacy) {
		return models.Group{}, ErrBadPrivacy
	}
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Name = normalize.Name(g.Name)
	g.NameCI = text.Fold(g.Name)
	g.Members = []primitive.ObjectID{g.CreatedBy}
	g.Admins = []primitive.ObjectID{g.CreatedBy}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByID returns mongo.ErrNoDocuments if the group does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Find returns groups matching filter sorted by name.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored group with g. Membership arrays are written as
// given; use the member and admin methods for concurrent-safe changes.
func (s *Store) Save(ctx context.Context, g models.Group) (models.Group, error) {
	g.Privacy = normalize.Privacy(g.Privacy)
	if !models.IsValidPrivacy(g.Privacy) {
		return models.Group{}, ErrBadPrivacy
	}
	g.Name = normalize.Name(g.Name)
	g.NameCI = text.Fold(g.Name)
	g.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		return models.Group{}, mongo.ErrNoDocuments
	}
	return g, nil
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByChurch returns the number of groups in a church.
func (s *Store) CountByChurch(ctx context.Context, church primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"church": church})
}

// AddMember adds user to members if absent.
func (s *Store) AddMember(ctx context.Context, id, user primitive.ObjectID) (models.Group, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"members": user}})
}

// RemoveMember removes user from members and admins. It does not protect the
// last admin; Leave does.
func (s *Store) RemoveMember(ctx context.Context, id, user primitive.ObjectID) (models.Group, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"members": user, "admins": user}})
}

// AddAdmin makes user an admin, adding them to members as well.
func (s *Store) AddAdmin(ctx context.Context, id, user primitive.ObjectID) (models.Group, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"members": user, "admins": user}})
}

// RemoveAdmin drops user from admins, keeping their membership. The group may
// be left without admins.
func (s *Store) RemoveAdmin(ctx context.Context, id, user primitive.ObjectID) (models.Group, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"admins": user}})
}

// Leave removes user from members and admins unless that would leave the group
// with no admin, in which case it returns ErrSoleAdmin and changes nothing.
// Leaving a group one is not in returns the group unchanged.
//
// The admin-count condition is part of the update filter, so two admins
// leaving at once cannot both succeed when only one may.
func (s *Store) Leave(ctx context.Context, id, user primitive.ObjectID) (models.Group, error) {
	filter := bson.M{
		"_id":     id,
		"members": user,
		"$or": []bson.M{
			{"admins": bson.M{"$ne": user}},
			{"admins.1": bson.M{"$exists": true}},
		},
	}
	g, err := s.update(ctx, filter, bson.M{"$pull": bson.M{"members": user, "admins": user}})
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, err
	}

	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Group{}, err
	}
	if !cur.HasMember(user) {
		return cur, nil
	}
	return models.Group{}, ErrSoleAdmin
}

func (s *Store) update(ctx context.Context, filter, update bson.M) (models.Group, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Group
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

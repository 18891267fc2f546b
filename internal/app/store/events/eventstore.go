// internal/app/store/events/eventstore.go
package eventstore

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
	return &Store{c: db.Collection("events")}
}

func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	if e.Attendees == nil {
		e.Attendees = []primitive.ObjectID{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID returns mongo.ErrNoDocuments if the event does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Find returns events matching filter in ascending date order.
func (s *Store) Find(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upcoming returns up to limit events in church dated at or after from.
func (s *Store) Upcoming(ctx context.Context, church primitive.ObjectID, from time.Time, limit int64) ([]models.Event, error) {
	return s.Find(ctx, bson.M{"church": church, "date": bson.M{"$gte": from}}, limit)
}

// Save replaces the stored event with e.
func (s *Store) Save(ctx context.Context, e models.Event) (models.Event, error) {
	if e.Attendees == nil {
		e.Attendees = []primitive.ObjectID{}
	}
	e.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, mongo.ErrNoDocuments
	}
	return e, nil
}

// Delete removes an event by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddAttendee adds user to the event's attendees if absent.
func (s *Store) AddAttendee(ctx context.Context, id, user primitive.ObjectID) (models.Event, error) {
	return s.updateAttendees(ctx, id, bson.M{"$addToSet": bson.M{"attendees": user}})
}

// RemoveAttendee removes user from the event's attendees.
func (s *Store) RemoveAttendee(ctx context.Context, id, user primitive.ObjectID) (models.Event, error) {
	return s.updateAttendees(ctx, id, bson.M{"$pull": bson.M{"attendees": user}})
}

func (s *Store) updateAttendees(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Event, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Event
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// CountInRange counts church events dated within [start, end] inclusive.
func (s *Store) CountInRange(ctx context.Context, church primitive.ObjectID, start, end time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"church": church,
		"date":   bson.M{"$gte": start, "$lte": end},
	})
}

// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"time"

	"github.com/dalemusser/churchhub/internal/app/system/calendar"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donations")}
}

// Create inserts d. A zero Date becomes the creation time; an empty Status
// becomes completed, since no payment processor confirms gifts.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	if d.Date.IsZero() {
		d.Date = now
	}
	if d.Status == "" {
		d.Status = models.DonationCompleted
	}
	if d.Type == "" {
		d.Type = models.DonationOffering
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID returns mongo.ErrNoDocuments if the donation does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// Find returns donations matching filter, newest first.
func (s *Store) Find(ctx context.Context, filter bson.M, limit int64) ([]models.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Donation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns the limit newest donations matching filter.
func (s *Store) Recent(ctx context.Context, filter bson.M, limit int64) ([]models.Donation, error) {
	return s.Find(ctx, filter, limit)
}

// Save replaces the stored donation with d.
func (s *Store) Save(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.UpdatedAt = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return models.Donation{}, err
	}
	if res.MatchedCount == 0 {
		return models.Donation{}, mongo.ErrNoDocuments
	}
	return d, nil
}

// Delete removes a donation by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type amountRow struct {
	Amount float64   `bson:"amount"`
	Type   string    `bson:"type"`
	Date   time.Time `bson:"date"`
}

// each streams the amount, type, and date of every donation matching filter.
func (s *Store) each(ctx context.Context, filter bson.M, fn func(amountRow)) error {
	opts := options.Find().SetProjection(bson.M{"amount": 1, "type": 1, "date": 1})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var row amountRow
		if err := cur.Decode(&row); err != nil {
			return err
		}
		fn(row)
	}
	return cur.Err()
}

// SumInRange totals the amounts of donations matching filter dated within
// [start, end] inclusive, and counts them. Status is not consulted.
func (s *Store) SumInRange(ctx context.Context, filter bson.M, start, end time.Time) (decimal.Decimal, int64, error) {
	f := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	for k, v := range filter {
		f[k] = v
	}
	total := decimal.Zero
	var n int64
	err := s.each(ctx, f, func(row amountRow) {
		total = total.Add(decimal.NewFromFloat(row.Amount))
		n++
	})
	if err != nil {
		return decimal.Zero, 0, err
	}
	return total, n, nil
}

// Stats summarizes the donations a caller can see.
type Stats struct {
	Total      decimal.Decimal
	Count      int64
	MonthTotal decimal.Decimal
	MonthCount int64
	ByType     map[string]decimal.Decimal
}

// Stats computes all-time and current-month totals for filter, with the
// month taken from now's calendar month.
func (s *Store) Stats(ctx context.Context, filter bson.M, now time.Time) (Stats, error) {
	start, end := calendar.MonthRange(now)
	st := Stats{
		Total:      decimal.Zero,
		MonthTotal: decimal.Zero,
		ByType:     map[string]decimal.Decimal{},
	}
	err := s.each(ctx, filter, func(row amountRow) {
		amt := decimal.NewFromFloat(row.Amount)
		st.Total = st.Total.Add(amt)
		st.Count++
		st.ByType[row.Type] = st.ByType[row.Type].Add(amt)
		if calendar.InRange(row.Date.In(now.Location()), start, end) {
			st.MonthTotal = st.MonthTotal.Add(amt)
			st.MonthCount++
		}
	})
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// Package metricsstore computes the church-scoped totals shown on dashboards.
package metricsstore

import (
	"context"
	"time"

	donationstore "github.com/dalemusser/churchhub/internal/app/store/donations"
	"github.com/dalemusser/churchhub/internal/app/system/calendar"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Counts is the set of totals for one church. Month values cover the calendar
// month containing the reference time, both ends inclusive.
type Counts struct {
	Members         int64
	EventsThisMonth int64
	UpcomingEvents  int64
	Groups          int64
	Departments     int64
	Media           int64
	DonationsCount  int64
	DonationsTotal  decimal.Decimal
	MonthStart      time.Time
	MonthEnd        time.Time
}

// FetchChurchCounts returns the dashboard totals for church, with the month
// taken from now. The counts run concurrently; the first failure cancels the
// rest and is returned.
func FetchChurchCounts(ctx context.Context, db *mongo.Database, church primitive.ObjectID, now time.Time) (Counts, error) {
	start, end := calendar.MonthRange(now)
	out := Counts{MonthStart: start, MonthEnd: end, DonationsTotal: decimal.Zero}
	inChurch := bson.M{"church": church}

	eg, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, coll string, filter bson.M) {
		eg.Go(func() error {
			n, err := db.Collection(coll).CountDocuments(ctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&out.Members, "users", inChurch)
	count(&out.EventsThisMonth, "events", bson.M{"church": church, "date": bson.M{"$gte": start, "$lte": end}})
	count(&out.UpcomingEvents, "events", bson.M{"church": church, "date": bson.M{"$gte": now}})
	count(&out.Groups, "groups", inChurch)
	count(&out.Departments, "departments", inChurch)
	count(&out.Media, "media", inChurch)

	eg.Go(func() error {
		total, n, err := donationstore.New(db).SumInRange(ctx, bson.M{"church": church}, start, end)
		if err != nil {
			return err
		}
		out.DonationsTotal = total
		out.DonationsCount = n
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}

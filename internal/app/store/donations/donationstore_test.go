package donationstore_test

import (
	"testing"
	"time"

	donationstore "github.com/dalemusser/churchhub/internal/app/store/donations"
	"github.com/dalemusser/churchhub/internal/app/system/calendar"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := store.Create(ctx, models.Donation{Amount: 25, Donor: primitive.NewObjectID(), ChurchID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Status != models.DonationCompleted {
		t.Errorf("Status = %q, want completed", d.Status)
	}
	if d.Date.IsZero() || d.Type == "" || d.Currency == "" {
		t.Errorf("defaults not applied: %+v", d)
	}
}

func TestStore_SumInRange_MonthBoundaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donationstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := primitive.NewObjectID()
	donor := primitive.NewObjectID()

	fx.CreateDonation(ctx, 10.10, church, donor, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	fx.CreateDonation(ctx, 20.20, church, donor, time.Date(2024, 6, 30, 23, 59, 59, 999_000_000, time.UTC))
	fx.CreateDonation(ctx, 1000, church, donor, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	fx.CreateDonation(ctx, 500, primitive.NewObjectID(), donor, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	start, end := calendar.MonthRange(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	total, n, err := store.SumInRange(ctx, bson.M{"church": church}, start, end)
	if err != nil {
		t.Fatalf("SumInRange: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if !total.Equal(decimal.RequireFromString("30.30")) {
		t.Errorf("total = %s, want 30.30", total)
	}
}

func TestStore_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := primitive.NewObjectID()
	donor := primitive.NewObjectID()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, d := range []models.Donation{
		{Amount: 0.1, Type: models.DonationTithe, Date: now},
		{Amount: 0.2, Type: models.DonationTithe, Date: now},
		{Amount: 5, Type: models.DonationMissions, Date: now.AddDate(0, -2, 0)},
	} {
		d.ChurchID = church
		d.Donor = donor
		if _, err := store.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	st, err := store.Stats(ctx, bson.M{"church": church}, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Count != 3 || st.MonthCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", st.Count, st.MonthCount)
	}
	if !st.Total.Equal(decimal.RequireFromString("5.3")) {
		t.Errorf("total = %s, want 5.3", st.Total)
	}
	if !st.MonthTotal.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("month total = %s, want 0.3", st.MonthTotal)
	}
	if !st.ByType[models.DonationMissions].Equal(decimal.NewFromInt(5)) {
		t.Errorf("by type = %v", st.ByType)
	}
}

func TestStore_FindNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := donationstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := primitive.NewObjectID()
	donor := primitive.NewObjectID()
	old := fx.CreateDonation(ctx, 1, church, donor, time.Now().Add(-time.Hour))
	recent := fx.CreateDonation(ctx, 2, church, donor, time.Now())

	got, err := store.Recent(ctx, bson.M{"donor": donor}, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Errorf("Recent = %+v, want %v (not %v)", got, recent.ID, old.ID)
	}
}

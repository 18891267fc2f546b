package indexes_test

import (
	"testing"

	"github.com/dalemusser/churchhub/internal/app/system/indexes"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_UniqueEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, bson.M{"email": "a@example.com"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := users.InsertOne(ctx, bson.M{"email": "a@example.com"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("second insert err = %v, want duplicate key", err)
	}
}

func TestEnsureAll_CreatesNamedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string]string{
		"events":        "idx_events_church_date",
		"donations":     "idx_donations_church_date",
		"announcements": "idx_announcements_church_pinned_created",
		"audit_events":  "idx_audit_church_timestamp",
	}
	for coll, name := range want {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("list %s: %v", coll, err)
		}
		found := false
		for cur.Next(ctx) {
			var idx bson.M
			if cur.Decode(&idx) == nil && idx["name"] == name {
				found = true
			}
		}
		cur.Close(ctx)
		if !found {
			t.Errorf("%s: index %s not found", coll, name)
		}
	}
}

package mediastore_test

import (
	"testing"

	mediastore "github.com/dalemusser/churchhub/internal/app/store/media"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateNormalizesTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, models.Media{
		Title:    "Easter sermon",
		Type:     models.MediaTypeSermon,
		Tags:     []string{"Easter", " easter ", "Faith"},
		ChurchID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(m.Tags) != 2 || m.Tags[0] != "easter" {
		t.Errorf("Tags = %v", m.Tags)
	}
}

func TestStore_FindPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mediastore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	up := primitive.NewObjectID()
	fx.CreateMedia(ctx, "a-public", a, up, true)
	fx.CreateMedia(ctx, "a-private", a, up, false)
	fx.CreateMedia(ctx, "b-public", b, up, true)

	got, err := store.FindPublic(ctx, "", 0)
	if err != nil {
		t.Fatalf("FindPublic: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("public = %d, want 2", len(got))
	}
	for _, m := range got {
		if !m.IsPublic {
			t.Errorf("non-public item %q returned", m.Title)
		}
	}

	none, _ := store.FindPublic(ctx, models.MediaTypeAudio, 0)
	if len(none) != 0 {
		t.Errorf("audio = %d, want 0", len(none))
	}

	n, err := store.Count(ctx, bson.M{"church": a})
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

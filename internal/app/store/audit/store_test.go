package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAndGetByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        "192.168.1.1",
		UserAgent: "TestBrowser/1.0",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() || events[0].Timestamp.IsZero() {
		t.Errorf("expected generated id and timestamp, got %+v", events[0])
	}
}

func TestStore_QueryFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	churchA := primitive.NewObjectID()
	churchB := primitive.NewObjectID()
	old := time.Now().Add(-48 * time.Hour)

	events := []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleChanged, ChurchID: &churchA, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventChurchDeleted, ChurchID: &churchA, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, ChurchID: &churchA, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleChanged, ChurchID: &churchB, Success: true},
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleChanged, ChurchID: &churchA, Success: true, Timestamp: old},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	since := time.Now().Add(-time.Hour)
	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   int64
	}{
		{"church A", audit.QueryFilter{ChurchID: &churchA}, 4},
		{"church A admin", audit.QueryFilter{ChurchID: &churchA, Category: audit.CategoryAdmin}, 3},
		{"role changes", audit.QueryFilter{EventType: audit.EventRoleChanged}, 3},
		{"recent church A", audit.QueryFilter{ChurchID: &churchA, Since: &since}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := store.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("Count = %d, want %d", n, tt.want)
			}
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if int64(len(got)) != tt.want {
				t.Errorf("Query returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

package announcements_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/churchhub/internal/app/features/account"
	"github.com/dalemusser/churchhub/internal/app/features/announcements"
	announcementstore "github.com/dalemusser/churchhub/internal/app/store/announcements"
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/indexes"
	"github.com/dalemusser/churchhub/internal/app/system/metrics"
	"github.com/dalemusser/churchhub/internal/app/system/ratelimit"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*announcements.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return announcements.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func announcementsAll() announcementstore.ListOptions {
	return announcementstore.ListOptions{IncludeExpired: true}
}

func withID(r *http.Request, id primitive.ObjectID) *http.Request {
	return testutil.WithChiURLParam(r, "id", id.Hex())
}

func TestCreate_RoleGate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	body := map[string]any{"title": "Picnic", "content": "Bring a dish"}

	tests := []struct {
		role   string
		status int
	}{
		{models.RoleAdmin, http.StatusCreated},
		{models.RolePastor, http.StatusCreated},
		{models.RoleDeacon, http.StatusCreated},
		{models.RoleLeader, http.StatusCreated},
		{models.RoleMember, http.StatusUnauthorized},
		{models.RoleVolunteer, http.StatusUnauthorized},
		{models.RoleSuperAdmin, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			before, _ := h.Store.ListByChurch(ctx, church.ID, announcementsAll())
			rec := testutil.NewRecorder()
			h.Create(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/announcements", body,
				testutil.TestUser(tt.role, church.ID)))
			rec.AssertStatus(t, tt.status)

			after, _ := h.Store.ListByChurch(ctx, church.ID, announcementsAll())
			want := len(before)
			if tt.status == http.StatusCreated {
				want++
			}
			if len(after) != want {
				t.Errorf("stored announcements: got %d, want %d", len(after), want)
			}
		})
	}

	t.Run("announcer without church", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.Create(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/announcements", body,
			testutil.TestUser(models.RolePastor, primitive.NilObjectID)))
		rec.AssertStatus(t, http.StatusUnauthorized)
	})
}

func TestCreate_SanitizesAndStamps(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	pastor := fx.CreatePastor(ctx, "Pat", "pat@x.com", church.ID)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/announcements", map[string]any{
		"title":   "<b>Picnic</b>",
		"content": `<p>Bring a dish</p><script>alert(1)</script>`,
		"church":  primitive.NewObjectID().Hex(),
		"author":  primitive.NewObjectID().Hex(),
	}, testutil.SessionFor(pastor)))
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Announcement
	rec.DecodeJSON(t, &got)
	if got.Title != "Picnic" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Content != "<p>Bring a dish</p>" {
		t.Errorf("content: got %q", got.Content)
	}
	if got.ChurchID != church.ID || got.Author != pastor.ID {
		t.Errorf("stamps: church %s author %s", got.ChurchID.Hex(), got.Author.Hex())
	}
	if got.Priority != models.PriorityNormal {
		t.Errorf("priority: got %q", got.Priority)
	}

	// A script-only body sanitizes to nothing and is rejected.
	rec = testutil.NewRecorder()
	h.Create(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/announcements", map[string]any{
		"title":   "Empty",
		"content": "<script>alert(1)</script>",
	}, testutil.SessionFor(pastor)))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestList_ExpiryAndPinned(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	author := primitive.NewObjectID()
	fx.CreateAnnouncement(ctx, "Plain", church.ID, author, false)
	fx.CreateAnnouncement(ctx, "Pinned", church.ID, author, true)
	old := fx.CreateAnnouncement(ctx, "Expired", church.ID, author, false)
	past := time.Now().UTC().Add(-time.Hour)
	old.ExpiresAt = &past
	if _, err := h.Store.Save(ctx, old); err != nil {
		t.Fatalf("Save: %v", err)
	}

	caller := testutil.TestUser(models.RoleMember, church.ID)

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/announcements", nil, caller))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Announcement
	rec.DecodeJSON(t, &list)
	if len(list) != 2 || list[0].Title != "Pinned" {
		t.Errorf("default list: %+v", list)
	}

	rec = testutil.NewRecorder()
	h.List(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/announcements?includeExpired=true", nil, caller))
	rec.AssertStatus(t, http.StatusOK)
	list = nil
	rec.DecodeJSON(t, &list)
	if len(list) != 3 {
		t.Errorf("with expired: got %d, want 3", len(list))
	}
}

func TestUpdate_PinnedFalseAndPartial(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	a := fx.CreateAnnouncement(ctx, "Picnic", church.ID, primitive.NewObjectID(), true)

	rec := testutil.NewRecorder()
	h.Update(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/announcements/x",
		map[string]any{"pinned": false}, testutil.TestUser(models.RoleDeacon, church.ID)), a.ID))
	rec.AssertStatus(t, http.StatusOK)

	stored, _ := h.Store.GetByID(ctx, a.ID)
	if stored.Pinned {
		t.Error("pinned false was not applied")
	}
	if stored.Title != a.Title || stored.Content != a.Content || stored.Priority != a.Priority {
		t.Errorf("unsupplied fields changed: %+v", stored)
	}

	// Omitting pinned leaves it alone.
	rec = testutil.NewRecorder()
	h.Update(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/announcements/x",
		map[string]any{"priority": "urgent"}, testutil.TestUser(models.RoleDeacon, church.ID)), a.ID))
	rec.AssertStatus(t, http.StatusOK)
	stored, _ = h.Store.GetByID(ctx, a.ID)
	if stored.Pinned || stored.Priority != models.PriorityUrgent {
		t.Errorf("second update: %+v", stored)
	}

	// Content that sanitizes to nothing leaves the stored content alone.
	rec = testutil.NewRecorder()
	h.Update(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/announcements/x",
		map[string]any{"content": "<script>x</script>"}, testutil.TestUser(models.RoleDeacon, church.ID)), a.ID))
	rec.AssertStatus(t, http.StatusOK)
	stored, _ = h.Store.GetByID(ctx, a.ID)
	if stored.Content != a.Content {
		t.Errorf("content: got %q, want %q", stored.Content, a.Content)
	}
}

func TestDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	a := fx.CreateAnnouncement(ctx, "Picnic", church.ID, primitive.NewObjectID(), false)

	rec := testutil.NewRecorder()
	h.Delete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/announcements/x", nil,
		testutil.TestUser(models.RoleLeader, primitive.NewObjectID())), a.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.Delete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/announcements/x", nil,
		testutil.TestUser(models.RoleLeader, church.ID)), a.ID))
	rec.AssertStatus(t, http.StatusOK)
	if msg := rec.Message(t); msg != "Announcement removed" {
		t.Errorf("message: got %q", msg)
	}

	rec = testutil.NewRecorder()
	h.Show(rec, withID(testutil.NewAuthenticatedRequest(t, "GET", "/api/announcements/x", nil,
		testutil.TestUser(models.RoleLeader, church.ID)), a.ID))
	rec.AssertStatus(t, http.StatusNotFound)
}

// A pastor registers into church X and posts an announcement; a member of X
// cannot change it.
func TestPastorAnnouncementScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	tokens := auth.NewTokenManager("scenario-secret-0123456789abcdef", time.Hour)
	acct := account.NewHandler(db, tokens, ratelimit.New(0, time.Minute), metrics.New(nil), nil, zap.NewNop())
	h := announcements.NewHandler(db, zap.NewNop())

	church := fx.CreateChurch(ctx, "Church X")

	register := func(name, email, role string) models.User {
		t.Helper()
		rec := testutil.NewRecorder()
		acct.HandleRegister(rec, testutil.NewJSONRequest(t, "POST", "/api/auth/register", map[string]any{
			"name":     name,
			"email":    email,
			"password": "secret123",
			"role":     role,
			"church":   church.ID.Hex(),
		}))
		rec.AssertStatus(t, http.StatusCreated)
		u, err := acct.Users.GetByEmail(ctx, email)
		if err != nil {
			t.Fatalf("GetByEmail(%s): %v", email, err)
		}
		return u
	}

	pastor := register("Pat Pastor", "pat@x.com", models.RolePastor)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/announcements",
		map[string]any{"title": "Welcome", "content": "Service at ten"}, testutil.SessionFor(pastor)))
	rec.AssertStatus(t, http.StatusCreated)
	var created models.Announcement
	rec.DecodeJSON(t, &created)
	if created.Author != pastor.ID {
		t.Errorf("author: got %s, want %s", created.Author.Hex(), pastor.ID.Hex())
	}
	if created.ChurchID != church.ID {
		t.Errorf("church: got %s, want %s", created.ChurchID.Hex(), church.ID.Hex())
	}

	member := register("Mo Member", "mo@x.com", models.RoleMember)

	rec = testutil.NewRecorder()
	h.Update(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/announcements/x",
		map[string]any{"title": "Hijacked", "pinned": true}, testutil.SessionFor(member)), created.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	stored, err := h.Store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != "Welcome" || stored.Pinned {
		t.Errorf("announcement changed by member: %+v", stored)
	}
}

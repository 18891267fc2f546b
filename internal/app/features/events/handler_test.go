package events_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/churchhub/internal/app/features/events"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return events.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func withID(r *http.Request, id primitive.ObjectID) *http.Request {
	return testutil.WithChiURLParam(r, "id", id.Hex())
}

func titles(list []models.Event) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, e := range list {
		out[e.Title] = true
	}
	return out
}

func TestHandleCreate_StampsChurchAndAuthor(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	other := fx.CreateChurch(ctx, "Hope")
	member := fx.CreateMember(ctx, "Ann", "ann@x.com", church.ID)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/api/events", map[string]any{
		"title":     "Picnic",
		"date":      "2024-06-15T12:00:00Z",
		"church":    other.ID.Hex(),
		"createdBy": primitive.NewObjectID().Hex(),
	}, testutil.SessionFor(member))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Event
	rec.DecodeJSON(t, &got)
	stored, err := h.Events.GetByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ChurchID != church.ID {
		t.Errorf("church: got %s, want caller's %s", stored.ChurchID.Hex(), church.ID.Hex())
	}
	if stored.CreatedBy != member.ID {
		t.Errorf("createdBy: got %s, want %s", stored.CreatedBy.Hex(), member.ID.Hex())
	}
	if len(stored.Attendees) != 0 {
		t.Errorf("attendees: got %v", stored.Attendees)
	}
}

func TestHandleCreate_NormalizesEndDateToUTC(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/api/events", map[string]any{
		"title":   "Picnic",
		"date":    "2024-06-15T12:00:00+02:00",
		"endDate": "2024-06-15T16:00:00+02:00",
	}, testutil.TestUser(models.RoleMember, primitive.NewObjectID()))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"endDate":"2024-06-15T14:00:00Z"`)
}

func TestHandleCreate_Rejects(t *testing.T) {
	h, _ := newTestHandler(t)
	church := primitive.NewObjectID()

	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing title", map[string]any{"date": "2024-06-15T12:00:00Z"}, "title is required"},
		{"missing date", map[string]any{"title": "Picnic"}, "date is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(t, "POST", "/api/events", tt.body,
				testutil.TestUser(models.RoleMember, church))
			rec := testutil.NewRecorder()
			h.HandleCreate(rec, req)
			rec.AssertStatus(t, http.StatusBadRequest)
			if msg := rec.Message(t); msg != tt.msg {
				t.Errorf("message: got %q, want %q", msg, tt.msg)
			}
		})
	}

	t.Run("caller without church", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest(t, "POST", "/api/events",
			map[string]any{"title": "Picnic", "date": "2024-06-15T12:00:00Z"},
			testutil.TestUser(models.RoleMember, primitive.NilObjectID))
		rec := testutil.NewRecorder()
		h.HandleCreate(rec, req)
		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestServeList_TenantScoping(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateChurch(ctx, "A")
	b := fx.CreateChurch(ctx, "B")
	author := primitive.NewObjectID()
	when := time.Date(2030, 1, 10, 18, 0, 0, 0, time.UTC)

	fx.CreateEvent(ctx, "A private", a.ID, author, when, false)
	fx.CreateEvent(ctx, "B private", b.ID, author, when, false)
	fx.CreateEvent(ctx, "B public", b.ID, author, when, true)

	caller := testutil.TestUser(models.RoleMember, a.ID)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/events", nil, caller))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Event
	rec.DecodeJSON(t, &list)
	got := titles(list)
	if !got["A private"] || !got["B public"] || got["B private"] || len(list) != 2 {
		t.Errorf("default list: got %v", got)
	}

	// An explicit church filter returns that church's events.
	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/events?church="+b.ID.Hex(), nil, caller))
	rec.AssertStatus(t, http.StatusOK)
	list = nil
	rec.DecodeJSON(t, &list)
	got = titles(list)
	if !got["B private"] || !got["B public"] || len(list) != 2 {
		t.Errorf("explicit list: got %v", got)
	}

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/events?church=nope", nil, caller))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeList_UpcomingAndCategory(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	author := primitive.NewObjectID()
	fx.CreateEvent(ctx, "Past", church.ID, author, time.Now().UTC().AddDate(0, 0, -7), false)
	future := fx.CreateEvent(ctx, "Future", church.ID, author, time.Now().UTC().AddDate(0, 0, 7), false)
	future.Category = "youth"
	if _, err := h.Events.Save(ctx, future); err != nil {
		t.Fatalf("Save: %v", err)
	}

	caller := testutil.TestUser(models.RoleMember, church.ID)
	tests := []struct {
		target string
		want   int
	}{
		{"/api/events", 2},
		{"/api/events?upcoming=true", 1},
		{"/api/events?category=youth", 1},
		{"/api/events?category=choir", 0},
		{"/api/events?limit=1", 1},
	}
	for _, tt := range tests {
		rec := testutil.NewRecorder()
		h.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", tt.target, nil, caller))
		rec.AssertStatus(t, http.StatusOK)
		var list []models.Event
		rec.DecodeJSON(t, &list)
		if len(list) != tt.want {
			t.Errorf("%s: got %d events, want %d", tt.target, len(list), tt.want)
		}
	}
}

func TestServeEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	e := fx.CreateEvent(ctx, "Picnic", church.ID, primitive.NewObjectID(), time.Now().UTC(), false)
	caller := testutil.TestUser(models.RoleMember, church.ID)

	rec := testutil.NewRecorder()
	h.ServeEvent(rec, withID(testutil.NewAuthenticatedRequest(t, "GET", "/api/events/x", nil, caller), e.ID))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Picnic")

	rec = testutil.NewRecorder()
	h.ServeEvent(rec, withID(testutil.NewAuthenticatedRequest(t, "GET", "/api/events/x", nil, caller), primitive.NewObjectID()))
	rec.AssertStatus(t, http.StatusNotFound)
	if msg := rec.Message(t); msg != "Event not found" {
		t.Errorf("message: got %q", msg)
	}

	// A malformed id is rejected before storage is consulted.
	rec = testutil.NewRecorder()
	h.ServeEvent(rec, testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(t, "GET", "/api/events/nope", nil, caller), "id", "nope"))
	rec.AssertStatus(t, http.StatusBadRequest)
	if msg := rec.Message(t); msg != "invalid id" {
		t.Errorf("message: got %q", msg)
	}
}

func TestHandleUpdate_OwnershipAndIsPublicFalse(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	other := fx.CreateChurch(ctx, "Hope")
	author := fx.CreateMember(ctx, "Author", "author@x.com", church.ID)
	e := fx.CreateEvent(ctx, "Picnic", church.ID, author.ID, time.Now().UTC(), true)

	tests := []struct {
		name   string
		caller models.User
		status int
	}{
		{"other member rejected", fx.CreateMember(ctx, "M", "m@x.com", church.ID), http.StatusUnauthorized},
		{"pastor of other church rejected", fx.CreatePastor(ctx, "P2", "p2@x.com", other.ID), http.StatusUnauthorized},
		{"author allowed", author, http.StatusOK},
		{"pastor of church allowed", fx.CreatePastor(ctx, "P", "p@x.com", church.ID), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(t, "PUT", "/api/events/x",
				map[string]any{"title": "Renamed by " + tt.caller.Name, "isPublic": false}, testutil.SessionFor(tt.caller))
			before, _ := h.Events.GetByID(ctx, e.ID)
			rec := testutil.NewRecorder()
			h.HandleUpdate(rec, withID(req, e.ID))
			rec.AssertStatus(t, tt.status)

			after, _ := h.Events.GetByID(ctx, e.ID)
			if tt.status != http.StatusOK {
				if after.Title != before.Title || after.IsPublic != before.IsPublic {
					t.Errorf("rejected update changed the event: %+v", after)
				}
				return
			}
			if after.Title != "Renamed by "+tt.caller.Name {
				t.Errorf("title: got %q", after.Title)
			}
			if after.IsPublic {
				t.Error("isPublic false was not applied")
			}
			if after.Location != e.Location {
				t.Errorf("absent location changed: got %q", after.Location)
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	e := fx.CreateEvent(ctx, "Picnic", church.ID, primitive.NewObjectID(), time.Now().UTC(), false)

	rec := testutil.NewRecorder()
	h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/events/x", nil,
		testutil.TestUser(models.RoleMember, church.ID)), e.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/events/x", nil,
		testutil.TestUser(models.RoleAdmin, church.ID)), e.ID))
	rec.AssertStatus(t, http.StatusOK)
	if msg := rec.Message(t); msg != "Event removed" {
		t.Errorf("message: got %q", msg)
	}
	if _, err := h.Events.GetByID(ctx, e.ID); err == nil {
		t.Error("event still stored after delete")
	}
}

func TestHandleRSVP_Idempotent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	e := fx.CreateEvent(ctx, "Picnic", church.ID, primitive.NewObjectID(), time.Now().UTC(), false)
	caller := testutil.TestUser(models.RoleMember, church.ID)

	rsvp := func(body any) models.Event {
		t.Helper()
		rec := testutil.NewRecorder()
		h.HandleRSVP(rec, withID(testutil.NewAuthenticatedRequest(t, "POST", "/api/events/x/rsvp", body, caller), e.ID))
		rec.AssertStatus(t, http.StatusOK)
		var got models.Event
		rec.DecodeJSON(t, &got)
		return got
	}

	rsvp(nil)
	got := rsvp(map[string]any{"attending": true})
	if len(got.Attendees) != 1 || got.Attendees[0].Hex() != caller.ID {
		t.Fatalf("attendees after two RSVPs: %v", got.Attendees)
	}

	got = rsvp(map[string]any{"attending": false})
	if len(got.Attendees) != 0 {
		t.Errorf("attendees after cancel: %v", got.Attendees)
	}

	rec := testutil.NewRecorder()
	h.HandleRSVP(rec, withID(testutil.NewAuthenticatedRequest(t, "POST", "/api/events/x/rsvp", nil, caller), primitive.NewObjectID()))
	rec.AssertStatus(t, http.StatusNotFound)
}

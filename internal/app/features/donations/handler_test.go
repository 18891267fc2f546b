package donations_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/churchhub/internal/app/features/donations"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*donations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return donations.NewHandler(db, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func withID(r *http.Request, id primitive.ObjectID) *http.Request {
	return testutil.WithChiURLParam(r, "id", id.Hex())
}

func TestHandleCreate_StampsDonorAndChurch(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	other := fx.CreateChurch(ctx, "Hope")
	member := fx.CreateMember(ctx, "Ann", "ann@x.com", church.ID)

	req := testutil.NewAuthenticatedRequest(t, "POST", "/api/donations", map[string]any{
		"amount": 42.5,
		"type":   "missions",
		"church": other.ID.Hex(),
		"donor":  primitive.NewObjectID().Hex(),
	}, testutil.SessionFor(member))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Donation
	rec.DecodeJSON(t, &got)
	stored, err := h.Donations.GetByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ChurchID != church.ID || stored.Donor != member.ID {
		t.Errorf("stamps: church %s donor %s", stored.ChurchID.Hex(), stored.Donor.Hex())
	}
	if stored.Status != models.DonationCompleted || stored.Currency != "USD" || stored.Type != models.DonationMissions {
		t.Errorf("defaults: %+v", stored)
	}
}

func TestHandleCreate_Rejects(t *testing.T) {
	h, _ := newTestHandler(t)
	caller := testutil.TestUser(models.RoleMember, primitive.NewObjectID())

	tests := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing amount", map[string]any{"type": "tithe"}, "amount must be greater than 0"},
		{"negative amount", map[string]any{"amount": -5}, "amount must be greater than 0"},
		{"unknown type", map[string]any{"amount": 5, "type": "bribe"}, "type must be one of: tithe offering missions building other"},
		{"unknown status", map[string]any{"amount": 5, "status": "refunded"}, "status must be one of: pending completed failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.HandleCreate(rec, testutil.NewAuthenticatedRequest(t, "POST", "/api/donations", tt.body, caller))
			rec.AssertStatus(t, http.StatusBadRequest)
			if msg := rec.Message(t); msg != tt.msg {
				t.Errorf("message: got %q, want %q", msg, tt.msg)
			}
		})
	}
}

func TestServeList_Scope(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	other := fx.CreateChurch(ctx, "Hope")
	ann := fx.CreateMember(ctx, "Ann", "ann@x.com", church.ID)
	bob := fx.CreateMember(ctx, "Bob", "bob@x.com", church.ID)
	pastor := fx.CreatePastor(ctx, "Pat", "pat@x.com", church.ID)
	now := time.Now().UTC()

	fx.CreateDonation(ctx, 10, church.ID, ann.ID, now)
	fx.CreateDonation(ctx, 20, church.ID, bob.ID, now)
	fx.CreateDonation(ctx, 30, other.ID, primitive.NewObjectID(), now)

	tests := []struct {
		name   string
		caller models.User
		want   int
	}{
		{"member sees own", ann, 1},
		{"pastor sees church", pastor, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeList(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/donations", nil, testutil.SessionFor(tt.caller)))
			rec.AssertStatus(t, http.StatusOK)
			var list []models.Donation
			rec.DecodeJSON(t, &list)
			if len(list) != tt.want {
				t.Errorf("got %d donations, want %d", len(list), tt.want)
			}
		})
	}
}

func TestServeStats(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	pastor := fx.CreatePastor(ctx, "Pat", "pat@x.com", church.ID)
	donor := primitive.NewObjectID()
	now := time.Now()

	fx.CreateDonation(ctx, 0.1, church.ID, donor, now)
	fx.CreateDonation(ctx, 0.2, church.ID, donor, now)
	fx.CreateDonation(ctx, 100, church.ID, donor, now.AddDate(-2, 0, 0))

	rec := testutil.NewRecorder()
	h.ServeStats(rec, testutil.NewAuthenticatedRequest(t, "GET", "/api/donations/stats", nil, testutil.SessionFor(pastor)))
	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Total      float64            `json:"total"`
		Count      int64              `json:"count"`
		MonthTotal float64            `json:"monthTotal"`
		MonthCount int64              `json:"monthCount"`
		ByType     map[string]float64 `json:"byType"`
	}
	rec.DecodeJSON(t, &got)
	if got.Count != 3 || got.Total != 100.3 {
		t.Errorf("all time: count %d total %v", got.Count, got.Total)
	}
	if got.MonthCount != 2 || got.MonthTotal != 0.3 {
		t.Errorf("month: count %d total %v", got.MonthCount, got.MonthTotal)
	}
	if got.ByType[models.DonationTithe] != 100.3 {
		t.Errorf("byType: %v", got.ByType)
	}
}

func TestServeDonation_Visibility(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	other := fx.CreateChurch(ctx, "Hope")
	ann := fx.CreateMember(ctx, "Ann", "ann@x.com", church.ID)
	d := fx.CreateDonation(ctx, 10, church.ID, ann.ID, time.Now().UTC())

	tests := []struct {
		name   string
		caller models.User
		status int
	}{
		{"donor", ann, http.StatusOK},
		{"pastor of church", fx.CreatePastor(ctx, "P", "p@x.com", church.ID), http.StatusOK},
		{"other member", fx.CreateMember(ctx, "Bob", "bob@x.com", church.ID), http.StatusUnauthorized},
		{"pastor of other church", fx.CreatePastor(ctx, "P2", "p2@x.com", other.ID), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeDonation(rec, withID(testutil.NewAuthenticatedRequest(t, "GET", "/api/donations/x", nil, testutil.SessionFor(tt.caller)), d.ID))
			rec.AssertStatus(t, tt.status)
		})
	}
}

func TestHandleUpdate_ReplaceIfPresent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	ann := fx.CreateMember(ctx, "Ann", "ann@x.com", church.ID)
	d := fx.CreateDonation(ctx, 10, church.ID, ann.ID, time.Now().UTC())

	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/donations/x",
		map[string]any{"note": "in memory of", "status": "pending"},
		testutil.SessionFor(fx.CreateMember(ctx, "Bob", "bob@x.com", church.ID))), d.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.HandleUpdate(rec, withID(testutil.NewAuthenticatedRequest(t, "PUT", "/api/donations/x",
		map[string]any{"note": "in memory of", "status": "pending"}, testutil.SessionFor(ann)), d.ID))
	rec.AssertStatus(t, http.StatusOK)

	stored, _ := h.Donations.GetByID(ctx, d.ID)
	if stored.Note != "in memory of" || stored.Status != models.DonationPending {
		t.Errorf("update not applied: %+v", stored)
	}
	if stored.Amount != 10 || stored.Type != models.DonationTithe {
		t.Errorf("absent fields changed: %+v", stored)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	church := fx.CreateChurch(ctx, "Grace")
	d := fx.CreateDonation(ctx, 10, church.ID, primitive.NewObjectID(), time.Now().UTC())

	rec := testutil.NewRecorder()
	h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/donations/x", nil,
		testutil.TestUser(models.RoleDeacon, church.ID)), d.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/donations/x", nil,
		testutil.TestUser(models.RoleAdmin, church.ID)), d.ID))
	rec.AssertStatus(t, http.StatusOK)
	if msg := rec.Message(t); msg != "Donation removed" {
		t.Errorf("message: got %q", msg)
	}

	rec = testutil.NewRecorder()
	h.HandleDelete(rec, withID(testutil.NewAuthenticatedRequest(t, "DELETE", "/api/donations/x", nil,
		testutil.TestUser(models.RoleAdmin, church.ID)), d.ID))
	rec.AssertStatus(t, http.StatusNotFound)
}

package bootstrap

import (
	"net/http"
	"testing"
	"time"

	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/churchhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSuperAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	err := ensureSuperAdmin(ctx, deps, "SuperAdmin@Test.com", "s3cret-pass", testLogger())
	if err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	err = db.Collection("users").FindOne(ctx, bson.M{"email": "superadmin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if user.Role != models.RoleSuperAdmin {
		t.Errorf("expected role 'superadmin', got %q", user.Role)
	}
	if user.ChurchID != nil {
		t.Error("expected superadmin to have no church")
	}
	if !userstore.CheckPassword(user, "s3cret-pass") {
		t.Error("expected the configured password to verify")
	}
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	church := fx.CreateChurch(ctx, "Grace")
	existing := fx.CreateUser(ctx, "Existing User", "existing@test.com", models.RoleAdmin, &church.ID)

	deps := DBDeps{MongoDatabase: db}

	// The password is ignored for an existing account.
	if err := ensureSuperAdmin(ctx, deps, existing.Email, "", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleSuperAdmin {
		t.Errorf("expected role 'superadmin', got %q", user.Role)
	}
	if user.ChurchID == nil || *user.ChurchID != church.ID {
		t.Error("expected promotion to keep the user's church")
	}
}

func TestEnsureSuperAdmin_AlreadySuperAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateUser(ctx, "Super Admin", "superadmin@test.com", models.RoleSuperAdmin, nil)

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, existing.Email, "", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleSuperAdmin || user.Name != "Super Admin" {
		t.Errorf("expected an existing superadmin to be left untouched, got %+v", user)
	}
}

func TestEnsureSuperAdmin_SkipsWithoutPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, "nobody@test.com", "", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users created, got %d", n)
	}
}

func TestValidateConfig(t *testing.T) {
	good := AppConfig{
		MongoURI:  "mongodb://localhost:27017",
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTExpiry: time.Hour,
	}

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", "prod", func(*AppConfig) {}, false},
		{"short secret in prod", "prod", func(c *AppConfig) { c.JWTSecret = "short" }, true},
		{"short secret in dev", "dev", func(c *AppConfig) { c.JWTSecret = "short" }, false},
		{"zero expiry", "dev", func(c *AppConfig) { c.JWTExpiry = 0 }, true},
		{"negative rate limit", "dev", func(c *AppConfig) { c.LoginRateLimit = -1 }, true},
		{"malformed superadmin email", "dev", func(c *AppConfig) { c.SuperAdminEmail = "root" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := good
			tc.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tc.env}, cfg, testLogger())
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example, ,https://b.example,")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("expected nil for an empty list")
	}
}

func TestBuildHandler_Routing(t *testing.T) {
	db := testutil.SetupTestDB(t)

	appCfg := AppConfig{
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		CORSAllowedOrigins: []string{"*"},
	}
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	t.Cleanup(stopBackground)

	t.Run("unknown route is a JSON 404", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/api/nowhere"))
		rec.AssertStatus(t, http.StatusNotFound)
		if got := rec.Message(t); got != "Route not found" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("gated route without a token", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/api/events"))
		rec.AssertStatus(t, http.StatusUnauthorized)
		if got := rec.Message(t); got != "not authorized, no token" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("public media needs no token", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/api/media/public"))
		rec.AssertStatus(t, http.StatusOK)
	})

	t.Run("metrics exposes rejections", func(t *testing.T) {
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/metrics"))
		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, `churchhub_credential_rejections_total{reason="missing"} 1`)
	})
}

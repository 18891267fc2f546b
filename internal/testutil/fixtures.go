package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateChurch creates a church with no members.
func (f *Fixtures) CreateChurch(ctx context.Context, name string) models.Church {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Church{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Denomination: "Baptist",
		Location:     "Test City",
		Members:      []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "churches", c)
	return c
}

// CreateUser creates a user with the given role in church (nil for none).
// The stored password hash is empty; such users cannot log in.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string, church *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      role,
		ChurchID:  church,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateMember creates a member of church.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string, church primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleMember, &church)
}

// CreatePastor creates a pastor of church.
func (f *Fixtures) CreatePastor(ctx context.Context, name, email string, church primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RolePastor, &church)
}

// CreateEvent creates an event on date in church.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, church, author primitive.ObjectID, date time.Time, public bool) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Date:      date,
		Location:  "Main hall",
		IsPublic:  public,
		ChurchID:  church,
		CreatedBy: author,
		Attendees: []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "events", e)
	return e
}

// CreateDonation creates a completed tithe on date.
func (f *Fixtures) CreateDonation(ctx context.Context, amount float64, church, donor primitive.ObjectID, date time.Time) models.Donation {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Donation{
		ID:        primitive.NewObjectID(),
		Amount:    amount,
		Currency:  "USD",
		Type:      models.DonationTithe,
		Status:    models.DonationCompleted,
		Date:      date,
		Donor:     donor,
		ChurchID:  church,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "donations", d)
	return d
}

// CreateMedia creates a video item.
func (f *Fixtures) CreateMedia(ctx context.Context, title string, church, uploader primitive.ObjectID, public bool) models.Media {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Media{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Type:       models.MediaTypeVideo,
		URL:        "https://media.example.com/" + title,
		Tags:       []string{},
		IsPublic:   public,
		ChurchID:   church,
		UploadedBy: uploader,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "media", m)
	return m
}

// CreateGroup creates a group whose creator is its only member and admin.
func (f *Fixtures) CreateGroup(ctx context.Context, name, privacy string, church, creator primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Privacy:   privacy,
		ChurchID:  church,
		CreatedBy: creator,
		Members:   []primitive.ObjectID{creator},
		Admins:    []primitive.ObjectID{creator},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "groups", g)
	return g
}

// CreateDepartment creates an active department.
func (f *Fixtures) CreateDepartment(ctx context.Context, name string, church, creator primitive.ObjectID) models.Department {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Department{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		IsActive:  true,
		ChurchID:  church,
		CreatedBy: creator,
		Members:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "departments", d)
	return d
}

// CreateAnnouncement creates a normal-priority announcement.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, title string, church, author primitive.ObjectID, pinned bool) models.Announcement {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Announcement{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   "Content of " + title,
		Priority:  models.PriorityNormal,
		Pinned:    pinned,
		ChurchID:  church,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "announcements", a)
	return a
}

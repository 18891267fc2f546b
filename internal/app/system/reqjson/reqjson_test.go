package reqjson

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type payload struct {
	Title  string `json:"title"`
	Pinned *bool  `json:"pinned"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, p payload)
	}{
		{"object", `{"title":"Hi","pinned":false}`, false, func(t *testing.T, p payload) {
			if p.Title != "Hi" || p.Pinned == nil || *p.Pinned {
				t.Errorf("decoded %+v", p)
			}
		}},
		{"absent bool stays nil", `{"title":"Hi"}`, false, func(t *testing.T, p payload) {
			if p.Pinned != nil {
				t.Errorf("pinned = %v, want nil", *p.Pinned)
			}
		}},
		{"empty body", ``, false, nil},
		{"malformed", `{"title":`, true, nil},
		{"trailing", `{"title":"a"}{"title":"b"}`, true, nil},
		{"wrong type", `{"title":5}`, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var p payload
			err := Decode(httptest.NewRecorder(), r, &p)
			if tt.wantErr {
				if httperr.Status(err) != 400 {
					t.Fatalf("err = %v, want 400-mapped error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	body := `{"title":"` + strings.Repeat("a", limits.MaxJSONBody) + `"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var p payload
	err := Decode(httptest.NewRecorder(), r, &p)
	if httperr.Status(err) != 400 || err.Error() != "request body too large" {
		t.Fatalf("err = %v, want 400 request body too large", err)
	}
}

func TestPathID(t *testing.T) {
	oid := primitive.NewObjectID()
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", oid.Hex(), false},
		{"malformed", "abc", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.value)
			r := httptest.NewRequest("GET", "/x", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := PathID(r, "id")
			if tt.wantErr {
				if !errors.Is(err, httperr.ErrBadRequest) {
					t.Errorf("expected ErrBadRequest, got %v", err)
				}
				return
			}
			if err != nil || got != oid {
				t.Errorf("PathID = %v, %v; want %v", got, err, oid)
			}
		})
	}
}

func TestOptionalID(t *testing.T) {
	got, err := OptionalID("pastor", "  ")
	if err != nil || got != nil {
		t.Errorf("empty: got %v, %v", got, err)
	}
	if _, err := OptionalID("pastor", "zzz"); !errors.Is(err, httperr.ErrBadRequest) {
		t.Errorf("malformed: got %v", err)
	}
	oid := primitive.NewObjectID()
	got, err = OptionalID("pastor", oid.Hex())
	if err != nil || got == nil || *got != oid {
		t.Errorf("valid: got %v, %v", got, err)
	}
}

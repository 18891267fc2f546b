// Package reqjson decodes JSON request bodies and route parameters.
package reqjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decode reads r's body into dst. Malformed JSON, trailing data, and oversize
// bodies return an error wrapping httperr.ErrBadRequest. An empty body leaves
// dst untouched.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	dec := json.NewDecoder(body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return httperr.BadRequest("request body too large")
		}
		return httperr.BadRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if dec.More() {
		return httperr.BadRequest("invalid JSON body: unexpected trailing data")
	}
	return nil
}

// PathID parses the chi URL parameter key as an ObjectID. A malformed value
// returns an error wrapping httperr.ErrBadRequest.
func PathID(r *http.Request, key string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, key)))
	if err != nil {
		return primitive.NilObjectID, httperr.BadRequest("invalid " + key)
	}
	return oid, nil
}

// OptionalID parses s as an ObjectID. Empty input returns nil.
func OptionalID(field, s string) (*primitive.ObjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, httperr.BadRequest("invalid " + field)
	}
	return &oid, nil
}

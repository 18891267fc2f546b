// Package httperr maps domain errors to HTTP status codes and writes the
// JSON error body every API response uses: {"message": "..."}.
//
// Authorization failures (role or ownership) map to 401, the same status as a
// missing or invalid credential. Clients of this API branch on 401 only.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the referenced id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated means no usable credential accompanied the request.
	ErrUnauthenticated = errors.New("not authorized, no token")
	// ErrForbidden means the caller's role or church does not permit the action.
	ErrForbidden = errors.New("not authorized")
	// ErrBadRequest wraps input the handler refuses before touching storage.
	ErrBadRequest = errors.New("bad request")
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrForbidden):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// Write writes {"message": msg} with the given status.
func Write(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Message{Message: msg})
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail logs err and writes the mapped status. The message is err's own text,
// including for storage faults (500); clients display it verbatim.
func Fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := Status(err)
	msg := err.Error()
	if errors.Is(err, mongo.ErrNoDocuments) {
		msg = ErrNotFound.Error()
	}
	if log != nil {
		fields := []zap.Field{zap.Error(err), zap.String("path", r.URL.Path), zap.Int("status", status)}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Debug("request rejected", fields...)
		}
	}
	Write(w, status, msg)
}

// NotFound returns an error that maps to 404 and reads "<what> not found".
func NotFound(what string) error {
	return &wrapped{msg: what + " not found", base: ErrNotFound}
}

// BadRequest returns an error that maps to 400 with msg as its text.
func BadRequest(msg string) error {
	return &wrapped{msg: msg, base: ErrBadRequest}
}

// Forbidden returns an error that maps to 401 with msg as its text.
func Forbidden(msg string) error {
	return &wrapped{msg: msg, base: ErrForbidden}
}

type wrapped struct {
	msg  string
	base error
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.base }

// NotFoundAs turns mongo.ErrNoDocuments into NotFound(what) and returns any
// other error unchanged.
func NotFoundAs(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(what)
	}
	return err
}

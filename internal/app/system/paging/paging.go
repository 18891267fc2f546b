// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows a list endpoint returns.
const PageSize = 50

// MaxPageSize caps the ?limit= a client may request.
const MaxPageSize = 200

// DashboardSize is the number of recent rows each dashboard panel shows.
const DashboardSize = 5

// ParseLimit reads ?limit= as an int64 for Find().SetLimit().
// Missing or invalid values give PageSize; values above MaxPageSize are capped.
func ParseLimit(r *http.Request) int64 {
	s := query.Get(r, "limit")
	if s == "" {
		return PageSize
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return PageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return int64(n)
}

// ParseFlag reads a boolean query parameter. "true", "1", and "yes" are
// true; anything else, including absence, is false.
func ParseFlag(r *http.Request, key string) bool {
	switch strings.ToLower(query.Get(r, key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

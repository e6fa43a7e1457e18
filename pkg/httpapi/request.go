package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrInvalidID = serrors.NewBadRequest("INVALID_ID", "id must be a positive integer", "id")

// ParseID extracts a positive int64 path variable.
func ParseID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseInt64Query returns the named query parameter as *int64, nil when absent.
func ParseInt64Query(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, serrors.NewBadRequest("INVALID_QUERY_PARAM", name+" must be an integer", name)
	}
	return &v, nil
}

// ParseBoolQuery returns the named query parameter as *bool, nil when absent.
func ParseBoolQuery(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, serrors.NewBadRequest("INVALID_QUERY_PARAM", name+" must be a boolean", name)
	}
	return &v, nil
}

// ParseTimeQuery returns the named query parameter as *time.Time, nil when
// absent. Values must be RFC 3339 timestamps.
func ParseTimeQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, serrors.NewBadRequest("MALFORMED_DATE", name+" must be an RFC 3339 timestamp", name)
	}
	return &v, nil
}

// ParsePagination reads page, limit and sort parameters. Absent values take
// defaults; malformed numerics are range errors, while unknown sort fields
// are left for the sort spec to degrade silently.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	q := r.URL.Query()
	p := pagination.Params{
		Page:      1,
		Limit:     pagination.DefaultLimit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, pagination.ErrPageOutOfRange
		}
		p.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, pagination.ErrLimitOutOfRange
		}
		p.Limit = limit
	}
	return p, p.Validate()
}

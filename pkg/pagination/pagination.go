package pagination

import (
	"fmt"
	"math"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

var (
	ErrPageOutOfRange  = serrors.NewBadRequest("PAGE_OUT_OF_RANGE", "page must be > 0", "page")
	ErrLimitOutOfRange = serrors.NewBadRequest("LIMIT_OUT_OF_RANGE", "limit must be between 1 and 100", "limit")
)

// Params is the inbound page request. SortBy values outside the resource's
// allow-list fall back to the resource default instead of erroring.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrPageOutOfRange
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return ErrLimitOutOfRange
	}
	return nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SortSpec names the sortable fields of a resource and its default ordering.
type SortSpec struct {
	// Allowed maps the public sort key to the underlying column expression.
	Allowed map[string]string
	// DefaultColumn is used when SortBy is absent or unknown.
	DefaultColumn string
	// DefaultDesc orders the default column descending (typically created_at).
	DefaultDesc bool
	// TieBreak is appended to every ordering so pages stay deterministic.
	TieBreak string
}

// OrderClause resolves the requested sort against the allow-list. Unknown sort
// fields degrade silently to the default.
func (s SortSpec) OrderClause(p Params) string {
	column, ok := s.Allowed[p.SortBy]
	desc := p.SortOrder == OrderDesc
	if !ok {
		column = s.DefaultColumn
		desc = s.DefaultDesc
	}
	dir := OrderAsc
	if desc {
		dir = OrderDesc
	}
	clause := fmt.Sprintf("ORDER BY %s %s", column, dir)
	if s.TieBreak != "" && s.TieBreak != column {
		clause += fmt.Sprintf(", %s ASC", s.TieBreak)
	}
	return clause
}

// Meta is the page metadata returned alongside every list response.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the narrow query surface repositories depend on. Both pgx.Tx and
// *pgxpool.Pool satisfy it, so the same repository code runs inside or
// outside an explicit transaction.
type Tx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Filter is a single column predicate used when composing WHERE clauses.
type Filter struct {
	Column string
	Op     string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: "=", Value: value}
}

func Gte(column string, value any) Filter {
	return Filter{Column: column, Op: ">=", Value: value}
}

func Lte(column string, value any) Filter {
	return Filter{Column: column, Op: "<=", Value: value}
}

// BuildWhere renders filters into a WHERE fragment with placeholders starting
// at startIndex, returning the fragment and the argument list. An empty
// filter set yields an empty fragment.
func BuildWhere(filters []Filter, startIndex int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conditions := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", f.Column, f.Op, startIndex+i))
		args = append(args, f.Value)
	}
	return strings.Join(conditions, " AND "), args
}

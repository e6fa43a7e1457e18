// Package scope resolves tenant ownership across chained relations.
//
// A Chain declares the joins from a leaf row up to the table carrying the
// tenant id (e.g. menu_categories -> menus -> stores). A lookup succeeds only
// if every link resolves, every intermediate row passes its active predicate,
// and the root row belongs to the requesting tenant. Every failure collapses
// into ErrNotFound: a row that exists but belongs to another tenant is
// indistinguishable from a row that does not exist.
package scope

import (
	"fmt"
	"strings"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewNotFound("NOT_FOUND", "record not found")

// Link is one hop of an ownership chain. Active is an optional predicate the
// joined row must satisfy (e.g. "s.status = 'ACTIVE'"); it is folded into the
// join condition so an inactive intermediate breaks the whole chain.
type Link struct {
	Table  string
	On     string
	Active string
	// Outer renders a LEFT JOIN for hops that are decorative rather than
	// ownership-bearing (e.g. an optional variant).
	Outer bool
}

// Chain is an ordered list of links from the leaf table up to the tenant
// column. Conditions passed to Query use placeholders starting at $2; $1 is
// always the tenant id.
type Chain struct {
	Leaf         string
	Links        []Link
	TenantColumn string
}

func (c Chain) From() string {
	var sb strings.Builder
	sb.WriteString(c.Leaf)
	for _, link := range c.Links {
		if link.Outer {
			sb.WriteString(" LEFT JOIN ")
		} else {
			sb.WriteString(" JOIN ")
		}
		sb.WriteString(link.Table)
		sb.WriteString(" ON ")
		sb.WriteString(link.On)
		if link.Active != "" {
			sb.WriteString(" AND ")
			sb.WriteString(link.Active)
		}
	}
	return sb.String()
}

// Query builds a tenant-scoped SELECT over the chain. Extra conditions are
// ANDed after the tenant check.
func (c Chain) Query(columns string, conditions ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s = $1", columns, c.From(), c.TenantColumn)
	for _, cond := range conditions {
		sb.WriteString(" AND ")
		sb.WriteString(cond)
	}
	return sb.String()
}

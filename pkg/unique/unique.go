// Package unique enforces composite-key uniqueness among active rows.
//
// Each association resource registers its key columns once, at package init,
// so the set of guarded tuples is a static table rather than anything
// resolved reflectively at runtime. Soft-deleted rows never collide: a
// deleted row may coexist with a new active row of the same key.
package unique

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

type Resource string

// Definition binds a resource to the table and key columns guarding it.
// ConflictMessage is surfaced verbatim to callers on collision.
type Definition struct {
	Resource        Resource
	Table           string
	KeyColumns      []string
	ConflictMessage string
}

var registry = map[Resource]Definition{}

// Register adds a resource definition. Called from package init; duplicate
// or incomplete registrations are programming errors.
func Register(def Definition) {
	if def.Resource == "" || def.Table == "" || len(def.KeyColumns) == 0 {
		panic(fmt.Sprintf("unique: incomplete definition for %q", def.Resource))
	}
	if _, ok := registry[def.Resource]; ok {
		panic(fmt.Sprintf("unique: duplicate registration for %q", def.Resource))
	}
	registry[def.Resource] = def
}

func Lookup(res Resource) (Definition, bool) {
	def, ok := registry[res]
	return def, ok
}

// Conflict returns the Conflict error for the resource, also used when the
// storage-level unique index loses a race and reports 23505.
func Conflict(res Resource) error {
	def, ok := registry[res]
	if !ok {
		return serrors.NewConflict("DUPLICATE", "record already exists")
	}
	return serrors.NewConflict(
		"DUPLICATE_"+strings.ToUpper(string(def.Resource)),
		def.ConflictMessage,
	)
}

// BuildQuery renders the collision search. NULL key parts match as IS NULL
// via IS NOT DISTINCT FROM, never as a wildcard. A non-zero excludeID adds
// the self-exclusion predicate, which is how update calls avoid colliding
// with their own row: one code path, no early exit.
func BuildQuery(def Definition, excludeID int64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT EXISTS (SELECT 1 FROM %s WHERE status = '%s'", def.Table, lifecycle.Active)
	for i, col := range def.KeyColumns {
		fmt.Fprintf(&sb, " AND %s IS NOT DISTINCT FROM $%d", col, i+1)
	}
	if excludeID > 0 {
		fmt.Fprintf(&sb, " AND id <> $%d", len(def.KeyColumns)+1)
	}
	sb.WriteString(")")
	return sb.String()
}

// Check searches active rows for a colliding key tuple, excluding excludeID
// when updating. key values must match the registered columns in order.
func Check(ctx context.Context, res Resource, key []any, excludeID int64) error {
	def, ok := registry[res]
	if !ok {
		return fmt.Errorf("unique: unknown resource %q", res)
	}
	if len(key) != len(def.KeyColumns) {
		return fmt.Errorf("unique: %q expects %d key values, got %d", res, len(def.KeyColumns), len(key))
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	args := append([]any{}, key...)
	if excludeID > 0 {
		args = append(args, excludeID)
	}

	var exists bool
	if err := tx.QueryRow(ctx, BuildQuery(def, excludeID), args...).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return Conflict(res)
	}
	return nil
}

// MapPgError converts a storage-level unique violation into the resource's
// Conflict error so a lost check-then-insert race surfaces identically to a
// guard hit.
func MapPgError(res Resource, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Conflict(res)
	}
	return err
}

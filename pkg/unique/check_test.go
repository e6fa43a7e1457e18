package unique_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/pkg/constants"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

// fakeStore stands in for the transaction Check runs against. It evaluates
// the duplicate search over in-memory rows with the same NULL-as-value
// matching the SQL expresses through IS NOT DISTINCT FROM.
type fakeStore struct {
	keyLen int
	rows   []fakeRow
}

type fakeRow struct {
	id     int64
	status string
	key    []any
}

func (f *fakeStore) insert(status string, key ...any) int64 {
	id := int64(len(f.rows) + 1)
	f.rows = append(f.rows, fakeRow{id: id, status: status, key: key})
	return id
}

func (f *fakeStore) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	key := args[:f.keyLen]
	var exclude int64
	if len(args) > f.keyLen {
		exclude = args[f.keyLen].(int64)
	}
	for _, row := range f.rows {
		if row.id == exclude || row.status != "active" {
			continue
		}
		if keysMatch(row.key, key) {
			return existsRow(true)
		}
	}
	return existsRow(false)
}

func (f *fakeStore) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

type existsRow bool

func (e existsRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = bool(e)
	return nil
}

func keysMatch(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		av, aNull := keyPart(a[i])
		bv, bNull := keyPart(b[i])
		if aNull != bNull || (!aNull && av != bv) {
			return false
		}
	}
	return true
}

func keyPart(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, false
	case *int64:
		if t == nil {
			return 0, true
		}
		return *t, false
	}
	return 0, true
}

func fakeCtx(store *fakeStore) context.Context {
	return context.WithValue(context.Background(), constants.TxKey, store)
}

func TestCheckTreatsNullAsValue(t *testing.T) {
	def := testDef()
	def.Resource = "test_null_key"
	unique.Register(def)

	store := &fakeStore{keyLen: 3}
	ctx := fakeCtx(store)

	// plain product first: no variant
	require.NoError(t, unique.Check(ctx, def.Resource, []any{int64(1), int64(5), (*int64)(nil)}, 0))
	store.insert("active", int64(1), int64(5), (*int64)(nil))

	// a concrete variant of the same product is a different tuple
	variant := int64(3)
	require.NoError(t, unique.Check(ctx, def.Resource, []any{int64(1), int64(5), &variant}, 0))
	store.insert("active", int64(1), int64(5), &variant)

	// a second nil-variant row collides with the first, not with the variant
	err := unique.Check(ctx, def.Resource, []any{int64(1), int64(5), (*int64)(nil)}, 0)
	require.Equal(t, serrors.KindConflict, serrors.KindOf(err))
	require.EqualError(t, err, "product is already on this menu")

	// so does a repeat of the concrete variant
	err = unique.Check(ctx, def.Resource, []any{int64(1), int64(5), &variant}, 0)
	require.Equal(t, serrors.KindConflict, serrors.KindOf(err))
}

func TestCheckIgnoresDeletedRows(t *testing.T) {
	def := testDef()
	def.Resource = "test_deleted_rows"
	unique.Register(def)

	store := &fakeStore{keyLen: 3}
	store.insert("deleted", int64(1), int64(5), (*int64)(nil))

	require.NoError(t, unique.Check(fakeCtx(store), def.Resource, []any{int64(1), int64(5), (*int64)(nil)}, 0))
}

func TestCheckExcludesOwnRowOnUpdate(t *testing.T) {
	def := testDef()
	def.Resource = "test_exclude_own_row"
	unique.Register(def)

	store := &fakeStore{keyLen: 3}
	own := store.insert("active", int64(1), int64(5), (*int64)(nil))

	key := []any{int64(1), int64(5), (*int64)(nil)}
	require.NoError(t, unique.Check(fakeCtx(store), def.Resource, key, own))

	err := unique.Check(fakeCtx(store), def.Resource, key, own+1)
	require.Equal(t, serrors.KindConflict, serrors.KindOf(err))
}

func TestCheckRejectsKeyArityMismatch(t *testing.T) {
	def := testDef()
	def.Resource = "test_key_arity"
	unique.Register(def)

	err := unique.Check(fakeCtx(&fakeStore{keyLen: 3}), def.Resource, []any{int64(1)}, 0)
	require.Error(t, err)
}

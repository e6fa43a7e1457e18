package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/category"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menu"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menucategory"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/services"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/itf"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

type mockMenuRepo struct {
	menus map[int64]*menu.Menu
}

func (m *mockMenuRepo) GetByID(_ context.Context, id int64) (*menu.Menu, error) {
	mn, ok := m.menus[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	return mn, nil
}

func (m *mockMenuRepo) Create(_ context.Context, mn *menu.Menu) (*menu.Menu, error) {
	m.menus[mn.ID] = mn
	return mn, nil
}

func (m *mockMenuRepo) List(_ context.Context) ([]*menu.Menu, error) {
	out := make([]*menu.Menu, 0, len(m.menus))
	for _, mn := range m.menus {
		out = append(out, mn)
	}
	return out, nil
}

type mockMenuCategoryRepo struct {
	nextID     int64
	rows       map[int64]*menucategory.MenuCategory
	lastParams menucategory.FindParams
}

func newMockMenuCategoryRepo() *mockMenuCategoryRepo {
	return &mockMenuCategoryRepo{rows: map[int64]*menucategory.MenuCategory{}}
}

func (m *mockMenuCategoryRepo) GetByID(_ context.Context, id int64) (*menucategory.MenuCategory, error) {
	mc, ok := m.rows[id]
	if !ok {
		return nil, menucategory.ErrNotFound
	}
	cp := *mc
	return &cp, nil
}

func (m *mockMenuCategoryRepo) GetPaginated(
	_ context.Context,
	params menucategory.FindParams,
	pg pagination.Params,
) ([]*menucategory.MenuCategory, int64, error) {
	m.lastParams = params
	out := make([]*menucategory.MenuCategory, 0, len(m.rows))
	for _, mc := range m.rows {
		out = append(out, mc)
	}
	total := int64(len(out))
	if len(out) > pg.Limit {
		out = out[:pg.Limit]
	}
	return out, total, nil
}

func (m *mockMenuCategoryRepo) Create(_ context.Context, mc *menucategory.MenuCategory) (*menucategory.MenuCategory, error) {
	m.nextID++
	mc.ID = m.nextID
	m.rows[mc.ID] = mc
	return mc, nil
}

func (m *mockMenuCategoryRepo) Update(_ context.Context, mc *menucategory.MenuCategory) (*menucategory.MenuCategory, error) {
	if _, ok := m.rows[mc.ID]; !ok {
		return nil, menucategory.ErrNotFound
	}
	cp := *mc
	m.rows[mc.ID] = &cp
	return mc, nil
}

func stubUnique(t *testing.T, fn func(ctx context.Context, res unique.Resource, key []any, excludeID int64) error) {
	t.Helper()
	prev := *services.CheckUniqueFn
	*services.CheckUniqueFn = fn
	t.Cleanup(func() { *services.CheckUniqueFn = prev })
}

func passUnique(t *testing.T) {
	stubUnique(t, func(context.Context, unique.Resource, []any, int64) error { return nil })
}

func newMenuCategoryFixture(t *testing.T) (*services.MenuCategoryService, *mockMenuCategoryRepo, context.Context) {
	t.Helper()
	repo := newMockMenuCategoryRepo()
	menus := &mockMenuRepo{menus: map[int64]*menu.Menu{
		10: {ID: 10, StoreID: 1, Name: "Lunch", IsActive: true},
	}}
	categories := treeRepo(&category.Node{ID: 20, Name: "Drinks"})
	svc := services.NewMenuCategoryService(repo, menus, categories, eventbus.NewEventPublisher(logrus.New()))
	ctx := itf.NewTestContext().WithTenantID(uuid.New()).Build()
	return svc, repo, ctx
}

func TestMenuCategoryCreate(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	mc, err := svc.Create(ctx, 10, 20, 1)
	require.NoError(t, err)
	require.NotZero(t, mc.ID)
	require.Equal(t, lifecycle.Active, mc.Status)
	require.Equal(t, int64(10), mc.MenuID)
	require.Equal(t, int64(20), mc.CategoryID)
}

func TestMenuCategoryCreateRequiresTenant(t *testing.T) {
	passUnique(t)
	svc, _, _ := newMenuCategoryFixture(t)

	_, err := svc.Create(context.Background(), 10, 20, 0)
	require.ErrorIs(t, err, composables.ErrNoTenant)
}

func TestMenuCategoryCreateMenuNotFound(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	_, err := svc.Create(ctx, 999, 20, 0)
	require.ErrorIs(t, err, menu.ErrNotFound)
}

func TestMenuCategoryCreateCategoryNotFound(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	_, err := svc.Create(ctx, 10, 999, 0)
	require.ErrorIs(t, err, category.ErrNotFound)
}

func TestMenuCategoryCreateDuplicate(t *testing.T) {
	stubUnique(t, func(_ context.Context, res unique.Resource, key []any, excludeID int64) error {
		require.Equal(t, menucategory.Resource, res)
		require.Equal(t, []any{int64(10), int64(20)}, key)
		require.Zero(t, excludeID)
		return unique.Conflict(res)
	})
	svc, _, ctx := newMenuCategoryFixture(t)

	_, err := svc.Create(ctx, 10, 20, 0)
	require.EqualError(t, err, "Category is already attached to this menu")
}

func TestMenuCategoryCreateNegativePosition(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	_, err := svc.Create(ctx, 10, 20, -1)
	require.ErrorIs(t, err, services.ErrNegativePosition)
}

func TestMenuCategoryGetHidesDeleted(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newMenuCategoryFixture(t)

	mc, err := svc.Create(ctx, 10, 20, 0)
	require.NoError(t, err)
	repo.rows[mc.ID].Status = lifecycle.Deleted

	_, err = svc.Get(ctx, mc.ID)
	require.ErrorIs(t, err, menucategory.ErrNotFound)
}

func TestMenuCategoryListValidatesPage(t *testing.T) {
	svc, _, ctx := newMenuCategoryFixture(t)

	_, _, err := svc.List(ctx, menucategory.FindParams{}, pagination.Params{Page: 0, Limit: 20})
	require.ErrorIs(t, err, pagination.ErrPageOutOfRange)

	_, _, err = svc.List(ctx, menucategory.FindParams{}, pagination.Params{Page: 1, Limit: 500})
	require.ErrorIs(t, err, pagination.ErrLimitOutOfRange)
}

func TestMenuCategoryListMeta(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	_, err := svc.Create(ctx, 10, 20, 0)
	require.NoError(t, err)

	out, meta, err := svc.List(ctx, menucategory.FindParams{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(1), meta.Total)
	require.Equal(t, 1, meta.TotalPages)
	require.False(t, meta.HasNext)
}

func TestMenuCategoryListDefaultsToActive(t *testing.T) {
	svc, repo, ctx := newMenuCategoryFixture(t)

	_, _, err := svc.List(ctx, menucategory.FindParams{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.NotNil(t, repo.lastParams.Status)
	require.Equal(t, lifecycle.Active, *repo.lastParams.Status)

	deleted := lifecycle.Deleted
	_, _, err = svc.List(ctx, menucategory.FindParams{Status: &deleted}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, lifecycle.Deleted, *repo.lastParams.Status)
}

func TestMenuCategoryListPassesDateRange(t *testing.T) {
	svc, repo, ctx := newMenuCategoryFixture(t)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	_, _, err := svc.List(ctx, menucategory.FindParams{CreatedFrom: &from, CreatedTo: &to}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, from, *repo.lastParams.CreatedFrom)
	require.Equal(t, to, *repo.lastParams.CreatedTo)
}

func TestMenuCategoryUpdateReChecksUnique(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newMenuCategoryFixture(t)
	categories := treeRepo(&category.Node{ID: 20, Name: "Drinks"}, &category.Node{ID: 21, Name: "Snacks"})
	menus := &mockMenuRepo{menus: map[int64]*menu.Menu{10: {ID: 10, Name: "Lunch"}}}
	svc = services.NewMenuCategoryService(repo, menus, categories, eventbus.NewEventPublisher(logrus.New()))

	mc, err := svc.Create(ctx, 10, 20, 0)
	require.NoError(t, err)

	var gotExclude int64
	stubUnique(t, func(_ context.Context, _ unique.Resource, key []any, excludeID int64) error {
		gotExclude = excludeID
		require.Equal(t, []any{int64(10), int64(21)}, key)
		return nil
	})

	updated, err := svc.Update(ctx, mc.ID, menucategory.UpdateData{CategoryID: ptr(int64(21))})
	require.NoError(t, err)
	require.Equal(t, int64(21), updated.CategoryID)
	require.Equal(t, mc.ID, gotExclude)
}

func TestMenuCategoryUpdateDeletedIsConflict(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newMenuCategoryFixture(t)

	mc, err := svc.Create(ctx, 10, 20, 0)
	require.NoError(t, err)
	repo.rows[mc.ID].Status = lifecycle.Deleted

	_, err = svc.Update(ctx, mc.ID, menucategory.UpdateData{Position: ptr(3)})
	require.ErrorIs(t, err, lifecycle.ErrDeleted)
}

func TestMenuCategoryDelete(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newMenuCategoryFixture(t)

	mc, err := svc.Create(ctx, 10, 20, 0)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, mc.ID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.Deleted, deleted.Status)

	_, err = svc.Delete(ctx, mc.ID)
	require.ErrorIs(t, err, lifecycle.ErrAlreadyDeleted)
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/plan"
	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/planapplication"
	"github.com/vendra-hq/vendra-sdk/modules/billing/services"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/itf"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

type mockPlanRepo struct {
	plans map[int64]*plan.Plan
}

func (m *mockPlanRepo) GetByID(_ context.Context, id int64) (*plan.Plan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, plan.ErrNotFound
	}
	return p, nil
}

func (m *mockPlanRepo) Create(_ context.Context, p *plan.Plan) (*plan.Plan, error) {
	m.plans[p.ID] = p
	return p, nil
}

type mockPlanApplicationRepo struct {
	nextID int64
	rows   map[int64]*planapplication.PlanApplication
}

func newMockPlanApplicationRepo() *mockPlanApplicationRepo {
	return &mockPlanApplicationRepo{rows: map[int64]*planapplication.PlanApplication{}}
}

func (m *mockPlanApplicationRepo) GetByID(_ context.Context, id int64) (*planapplication.PlanApplication, error) {
	pa, ok := m.rows[id]
	if !ok {
		return nil, planapplication.ErrNotFound
	}
	cp := *pa
	return &cp, nil
}

func (m *mockPlanApplicationRepo) GetPaginated(
	_ context.Context,
	_ planapplication.FindParams,
	pg pagination.Params,
) ([]*planapplication.PlanApplication, int64, error) {
	out := make([]*planapplication.PlanApplication, 0, len(m.rows))
	for _, pa := range m.rows {
		out = append(out, pa)
	}
	total := int64(len(out))
	if len(out) > pg.Limit {
		out = out[:pg.Limit]
	}
	return out, total, nil
}

func (m *mockPlanApplicationRepo) Create(_ context.Context, pa *planapplication.PlanApplication) (*planapplication.PlanApplication, error) {
	m.nextID++
	pa.ID = m.nextID
	m.rows[pa.ID] = pa
	return pa, nil
}

func (m *mockPlanApplicationRepo) Update(_ context.Context, pa *planapplication.PlanApplication) (*planapplication.PlanApplication, error) {
	if _, ok := m.rows[pa.ID]; !ok {
		return nil, planapplication.ErrNotFound
	}
	cp := *pa
	m.rows[pa.ID] = &cp
	return pa, nil
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

func newFixture(t *testing.T) (*services.PlanApplicationService, *mockPlanApplicationRepo, context.Context) {
	t.Helper()
	repo := newMockPlanApplicationRepo()
	plans := &mockPlanRepo{plans: map[int64]*plan.Plan{
		70: {ID: 70, Name: "Pro", IsActive: true},
	}}
	svc := services.NewPlanApplicationService(repo, plans, eventbus.NewEventPublisher(logrus.New()))
	ctx := itf.NewTestContext().WithTenantID(uuid.New()).Build()
	return svc, repo, ctx
}

func TestPlanApplicationCreate(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	pa, err := svc.Create(ctx, 70, "pos-terminal")
	require.NoError(t, err)
	require.Equal(t, lifecycle.Active, pa.Status)
	require.Equal(t, "pos-terminal", pa.ApplicationRef)
}

func TestPlanApplicationCreateRequiresTenant(t *testing.T) {
	passUnique(t)
	svc, _, _ := newFixture(t)

	_, err := svc.Create(context.Background(), 70, "pos-terminal")
	require.ErrorIs(t, err, composables.ErrNoTenant)
}

func TestPlanApplicationCreateEmptyRef(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, 70, "")
	require.ErrorIs(t, err, services.ErrEmptyApplicationRef)
}

func TestPlanApplicationCreatePlanNotFound(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, 999, "pos-terminal")
	require.ErrorIs(t, err, plan.ErrNotFound)
}

func TestPlanApplicationCreateDuplicate(t *testing.T) {
	stubUnique(t, func(_ context.Context, res unique.Resource, key []any, _ int64) error {
		require.Equal(t, planapplication.Resource, res)
		require.Equal(t, []any{int64(70), "pos-terminal"}, key)
		return unique.Conflict(res)
	})
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, 70, "pos-terminal")
	require.EqualError(t, err, "Application is already subscribed to this plan")
}

func TestPlanApplicationUpdateRePointsRef(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	pa, err := svc.Create(ctx, 70, "pos-terminal")
	require.NoError(t, err)

	var gotExclude int64
	stubUnique(t, func(_ context.Context, _ unique.Resource, key []any, excludeID int64) error {
		gotExclude = excludeID
		require.Equal(t, []any{int64(70), "kiosk"}, key)
		return nil
	})

	ref := "kiosk"
	updated, err := svc.Update(ctx, pa.ID, planapplication.UpdateData{ApplicationRef: &ref})
	require.NoError(t, err)
	require.Equal(t, "kiosk", updated.ApplicationRef)
	require.Equal(t, pa.ID, gotExclude)
}

func TestPlanApplicationDeleteTwiceIsConflict(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	pa, err := svc.Create(ctx, 70, "pos-terminal")
	require.NoError(t, err)

	_, err = svc.Delete(ctx, pa.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, pa.ID)
	require.ErrorIs(t, err, lifecycle.ErrAlreadyDeleted)
}

func TestPlanApplicationGetHidesDeleted(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newFixture(t)

	pa, err := svc.Create(ctx, 70, "pos-terminal")
	require.NoError(t, err)
	repo.rows[pa.ID].Status = lifecycle.Deleted

	_, err = svc.Get(ctx, pa.ID)
	require.ErrorIs(t, err, planapplication.ErrNotFound)
}

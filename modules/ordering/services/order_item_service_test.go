package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/product"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/order"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/orderitem"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/services"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/itf"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

type mockOrderRepo struct {
	orders map[int64]*order.Order
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	m.orders[o.ID] = o
	return o, nil
}

type mockProductRepo struct {
	products map[int64]*product.Product
	variants map[int64]*product.Variant
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetVariant(_ context.Context, productID, variantID int64) (*product.Variant, error) {
	v, ok := m.variants[variantID]
	if !ok || v.ProductID != productID {
		return nil, product.ErrVariantNotFound
	}
	return v, nil
}

type mockOrderItemRepo struct {
	nextID int64
	rows   map[int64]*orderitem.OrderItem
}

func newMockOrderItemRepo() *mockOrderItemRepo {
	return &mockOrderItemRepo{rows: map[int64]*orderitem.OrderItem{}}
}

func (m *mockOrderItemRepo) GetByID(_ context.Context, id int64) (*orderitem.OrderItem, error) {
	oi, ok := m.rows[id]
	if !ok {
		return nil, orderitem.ErrNotFound
	}
	cp := *oi
	return &cp, nil
}

func (m *mockOrderItemRepo) GetPaginated(
	_ context.Context,
	_ orderitem.FindParams,
	pg pagination.Params,
) ([]*orderitem.OrderItem, int64, error) {
	out := make([]*orderitem.OrderItem, 0, len(m.rows))
	for _, oi := range m.rows {
		out = append(out, oi)
	}
	total := int64(len(out))
	if len(out) > pg.Limit {
		out = out[:pg.Limit]
	}
	return out, total, nil
}

func (m *mockOrderItemRepo) Create(_ context.Context, oi *orderitem.OrderItem) (*orderitem.OrderItem, error) {
	m.nextID++
	oi.ID = m.nextID
	m.rows[oi.ID] = oi
	return oi, nil
}

func (m *mockOrderItemRepo) Update(_ context.Context, oi *orderitem.OrderItem) (*orderitem.OrderItem, error) {
	if _, ok := m.rows[oi.ID]; !ok {
		return nil, orderitem.ErrNotFound
	}
	cp := *oi
	m.rows[oi.ID] = &cp
	return oi, nil
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

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T) (*services.OrderItemService, *mockOrderItemRepo, context.Context) {
	t.Helper()
	repo := newMockOrderItemRepo()
	orders := &mockOrderRepo{orders: map[int64]*order.Order{
		50: {ID: 50, StoreID: 1, Number: "ORD-50", Status: order.StatusOpen},
	}}
	products := &mockProductRepo{
		products: map[int64]*product.Product{30: {ID: 30, Name: "Cola", IsActive: true}},
		variants: map[int64]*product.Variant{40: {ID: 40, ProductID: 30, Name: "Large"}},
	}
	svc := services.NewOrderItemService(repo, orders, products, eventbus.NewEventPublisher(logrus.New()))
	ctx := itf.NewTestContext().WithTenantID(uuid.New()).Build()
	return svc, repo, ctx
}

func TestOrderItemCreate(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	oi, err := svc.Create(ctx, services.OrderItemCreateData{
		OrderID:   50,
		ProductID: 30,
		Quantity:  2,
		UnitPrice: decimal.NewFromFloat(3.25),
	})
	require.NoError(t, err)
	require.Equal(t, lifecycle.Active, oi.Status)
	require.True(t, oi.Total().Equal(decimal.NewFromFloat(6.50)))
}

func TestOrderItemCreateRequiresTenant(t *testing.T) {
	passUnique(t)
	svc, _, _ := newFixture(t)

	_, err := svc.Create(context.Background(), services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.ErrorIs(t, err, composables.ErrNoTenant)
}

func TestOrderItemCreateZeroQuantity(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 0})
	require.ErrorIs(t, err, orderitem.ErrInvalidQuantity)
	require.EqualError(t, err, "Quantity must be greater than 0")
}

func TestOrderItemCreateNegativeUnitPrice(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, services.OrderItemCreateData{
		OrderID:   50,
		ProductID: 30,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, orderitem.ErrInvalidUnitPrice)
	require.EqualError(t, err, "Unit price must be greater than or equal to 0")
}

func TestOrderItemCreateOrderNotFound(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 999, ProductID: 30, Quantity: 1})
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderItemCreateDuplicateProduct(t *testing.T) {
	stubUnique(t, func(_ context.Context, res unique.Resource, key []any, _ int64) error {
		require.Equal(t, orderitem.Resource, res)
		require.Equal(t, []any{int64(50), int64(30), (*int64)(nil)}, key)
		return unique.Conflict(res)
	})
	svc, _, ctx := newFixture(t)

	_, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.EqualError(t, err, "Product is already in this order")
}

func TestOrderItemCreateWithVariant(t *testing.T) {
	var gotKey []any
	stubUnique(t, func(_ context.Context, _ unique.Resource, key []any, _ int64) error {
		gotKey = key
		return nil
	})
	svc, _, ctx := newFixture(t)

	variantID := int64(40)
	oi, err := svc.Create(ctx, services.OrderItemCreateData{
		OrderID:   50,
		ProductID: 30,
		VariantID: &variantID,
		Quantity:  1,
	})
	require.NoError(t, err)
	require.NotNil(t, oi.VariantID)
	require.Equal(t, []any{int64(50), int64(30), &variantID}, gotKey)
}

func TestOrderItemCreateVariantOfOtherProduct(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	variantID := int64(99)
	_, err := svc.Create(ctx, services.OrderItemCreateData{
		OrderID:   50,
		ProductID: 30,
		VariantID: &variantID,
		Quantity:  1,
	})
	require.ErrorIs(t, err, product.ErrVariantNotFound)
}

func TestOrderItemUpdateQuantity(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	oi, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, oi.ID, orderitem.UpdateData{Quantity: ptr(5), Notes: ptr("no ice")})
	require.NoError(t, err)
	require.Equal(t, 5, updated.Quantity)
	require.Equal(t, "no ice", updated.Notes)
}

func TestOrderItemUpdateDeletedIsConflict(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newFixture(t)

	oi, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.NoError(t, err)
	repo.rows[oi.ID].Status = lifecycle.Deleted

	_, err = svc.Update(ctx, oi.ID, orderitem.UpdateData{Quantity: ptr(2)})
	require.ErrorIs(t, err, lifecycle.ErrDeleted)
}

func TestOrderItemDeleteTwiceIsConflict(t *testing.T) {
	passUnique(t)
	svc, _, ctx := newFixture(t)

	oi, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, oi.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, oi.ID)
	require.ErrorIs(t, err, lifecycle.ErrAlreadyDeleted)
}

func TestOrderItemGetHidesDeleted(t *testing.T) {
	passUnique(t)
	svc, repo, ctx := newFixture(t)

	oi, err := svc.Create(ctx, services.OrderItemCreateData{OrderID: 50, ProductID: 30, Quantity: 1})
	require.NoError(t, err)
	repo.rows[oi.ID].Status = lifecycle.Deleted

	_, err = svc.Get(ctx, oi.ID)
	require.ErrorIs(t, err, orderitem.ErrNotFound)
}

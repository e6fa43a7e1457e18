package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/order"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
)

var orderChain = scope.Chain{
	Leaf: "orders o",
	Links: []scope.Link{
		{Table: "stores s", On: "s.id = o.store_id", Active: "s.status = 'ACTIVE'"},
	},
	TenantColumn: "s.tenant_id",
}

const orderColumns = "o.id, o.store_id, o.number, o.status, o.created_at, o.updated_at, s.name"

type OrderRepository struct{}

func NewOrderRepository() order.Repository {
	return &OrderRepository{}
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, orderChain.Query(orderColumns, "o.id = $2"), tenantID, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query order")
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*order.Order, error) {
		var o order.Order
		err := row.Scan(&o.ID, &o.StoreID, &o.Number, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.StoreName)
		return &o, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan order")
	}
	if len(orders) == 0 {
		return nil, order.ErrNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO orders (store_id, number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		o.StoreID, o.Number, o.Status, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}
	return r.GetByID(ctx, o.ID)
}

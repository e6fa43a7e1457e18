package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/orderitem"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/repo"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

var orderItemChain = scope.Chain{
	Leaf: "order_items oi",
	Links: []scope.Link{
		{Table: "orders o", On: "o.id = oi.order_id"},
		{Table: "stores s", On: "s.id = o.store_id", Active: "s.status = 'ACTIVE'"},
		{Table: "products p", On: "p.id = oi.product_id"},
		{Table: "product_variants v", On: "v.id = oi.variant_id", Outer: true},
	},
	TenantColumn: "s.tenant_id",
}

var orderItemSort = pagination.SortSpec{
	Allowed: map[string]string{
		"created_at": "oi.created_at",
		"updated_at": "oi.updated_at",
		"quantity":   "oi.quantity",
		"unit_price": "oi.unit_price",
	},
	DefaultColumn: "oi.created_at",
	DefaultDesc:   true,
	TieBreak:      "oi.id",
}

const orderItemColumns = "oi.id, oi.order_id, oi.product_id, oi.variant_id, oi.quantity, oi.unit_price, oi.notes, oi.status, oi.created_at, oi.updated_at, o.number, p.name, v.name"

type OrderItemRepository struct{}

func NewOrderItemRepository() orderitem.Repository {
	return &OrderItemRepository{}
}

func (r *OrderItemRepository) GetByID(ctx context.Context, id int64) (*orderitem.OrderItem, error) {
	out, err := r.queryOrderItems(ctx, orderItemChain.Query(orderItemColumns, "oi.id = $2"), id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, orderitem.ErrNotFound
	}
	return out[0], nil
}

func (r *OrderItemRepository) GetPaginated(
	ctx context.Context,
	params orderitem.FindParams,
	pg pagination.Params,
) ([]*orderitem.OrderItem, int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var filters []repo.Filter
	if params.OrderID != nil {
		filters = append(filters, repo.Eq("oi.order_id", *params.OrderID))
	}
	if params.ProductID != nil {
		filters = append(filters, repo.Eq("oi.product_id", *params.ProductID))
	}
	if params.Status != nil {
		filters = append(filters, repo.Eq("oi.status", *params.Status))
	}
	if params.CreatedFrom != nil {
		filters = append(filters, repo.Gte("oi.created_at", *params.CreatedFrom))
	}
	if params.CreatedTo != nil {
		filters = append(filters, repo.Lte("oi.created_at", *params.CreatedTo))
	}

	where, args := repo.BuildWhere(filters, 2)
	var conditions []string
	if where != "" {
		conditions = append(conditions, where)
	}
	queryArgs := append([]any{tenantID}, args...)

	var total int64
	if err := tx.QueryRow(ctx, orderItemChain.Query("COUNT(*)", conditions...), queryArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count order items")
	}

	query := fmt.Sprintf(
		"%s %s LIMIT %d OFFSET %d",
		orderItemChain.Query(orderItemColumns, conditions...),
		orderItemSort.OrderClause(pg),
		pg.Limit,
		pg.Offset(),
	)
	out, err := r.queryOrderItemsTx(ctx, tx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *OrderItemRepository) Create(ctx context.Context, oi *orderitem.OrderItem) (*orderitem.OrderItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO order_items (order_id, product_id, variant_id, quantity, unit_price, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		oi.OrderID, oi.ProductID, oi.VariantID, oi.Quantity, oi.UnitPrice, oi.Notes, oi.Status, oi.CreatedAt, oi.UpdatedAt,
	).Scan(&oi.ID); err != nil {
		return nil, unique.MapPgError(orderitem.Resource, err)
	}
	return r.GetByID(ctx, oi.ID)
}

func (r *OrderItemRepository) Update(ctx context.Context, oi *orderitem.OrderItem) (*orderitem.OrderItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE order_items
		SET quantity = $1, unit_price = $2, notes = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := tx.Exec(ctx, query, oi.Quantity, oi.UnitPrice, oi.Notes, oi.Status, oi.UpdatedAt, oi.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order item")
	}
	if tag.RowsAffected() == 0 {
		return nil, orderitem.ErrNotFound
	}
	return r.GetByID(ctx, oi.ID)
}

func (r *OrderItemRepository) queryOrderItems(ctx context.Context, query string, args ...any) ([]*orderitem.OrderItem, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryOrderItemsTx(ctx, tx, query, append([]any{tenantID}, args...)...)
}

func (r *OrderItemRepository) queryOrderItemsTx(ctx context.Context, tx repo.Tx, query string, args ...any) ([]*orderitem.OrderItem, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query order items")
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*orderitem.OrderItem, error) {
		var oi orderitem.OrderItem
		err := row.Scan(
			&oi.ID, &oi.OrderID, &oi.ProductID, &oi.VariantID, &oi.Quantity, &oi.UnitPrice, &oi.Notes,
			&oi.Status, &oi.CreatedAt, &oi.UpdatedAt, &oi.OrderNumber, &oi.ProductName, &oi.VariantName,
		)
		return &oi, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan order items")
	}
	return out, nil
}

package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menuitem"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/repo"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

// menuItemChain mirrors the menu category chain but hangs products off the
// leaf. The variant join stays outside the chain because it is optional.
var menuItemChain = scope.Chain{
	Leaf: "menu_items mi",
	Links: []scope.Link{
		{Table: "menus m", On: "m.id = mi.menu_id", Active: "m.is_active"},
		{Table: "stores s", On: "s.id = m.store_id", Active: "s.status = 'ACTIVE'"},
		{Table: "products p", On: "p.id = mi.product_id"},
		{Table: "product_variants v", On: "v.id = mi.variant_id", Outer: true},
	},
	TenantColumn: "s.tenant_id",
}

var menuItemSort = pagination.SortSpec{
	Allowed: map[string]string{
		"position":   "mi.position",
		"created_at": "mi.created_at",
		"updated_at": "mi.updated_at",
	},
	DefaultColumn: "mi.created_at",
	DefaultDesc:   true,
	TieBreak:      "mi.id",
}

const menuItemColumns = "mi.id, mi.menu_id, mi.product_id, mi.variant_id, mi.price_override, mi.position, mi.is_available, mi.status, mi.created_at, mi.updated_at, m.name, p.name, v.name"

type MenuItemRepository struct{}

func NewMenuItemRepository() menuitem.Repository {
	return &MenuItemRepository{}
}

func (r *MenuItemRepository) GetByID(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	out, err := r.queryMenuItems(ctx, menuItemChain.Query(menuItemColumns, "mi.id = $2"), id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, menuitem.ErrNotFound
	}
	return out[0], nil
}

func (r *MenuItemRepository) GetPaginated(
	ctx context.Context,
	params menuitem.FindParams,
	pg pagination.Params,
) ([]*menuitem.MenuItem, int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var filters []repo.Filter
	if params.MenuID != nil {
		filters = append(filters, repo.Eq("mi.menu_id", *params.MenuID))
	}
	if params.ProductID != nil {
		filters = append(filters, repo.Eq("mi.product_id", *params.ProductID))
	}
	if params.IsAvailable != nil {
		filters = append(filters, repo.Eq("mi.is_available", *params.IsAvailable))
	}
	if params.Status != nil {
		filters = append(filters, repo.Eq("mi.status", *params.Status))
	}
	if params.CreatedFrom != nil {
		filters = append(filters, repo.Gte("mi.created_at", *params.CreatedFrom))
	}
	if params.CreatedTo != nil {
		filters = append(filters, repo.Lte("mi.created_at", *params.CreatedTo))
	}

	where, args := repo.BuildWhere(filters, 2)
	var conditions []string
	if where != "" {
		conditions = append(conditions, where)
	}
	queryArgs := append([]any{tenantID}, args...)

	var total int64
	if err := tx.QueryRow(ctx, menuItemChain.Query("COUNT(*)", conditions...), queryArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count menu items")
	}

	query := fmt.Sprintf(
		"%s %s LIMIT %d OFFSET %d",
		menuItemChain.Query(menuItemColumns, conditions...),
		menuItemSort.OrderClause(pg),
		pg.Limit,
		pg.Offset(),
	)
	out, err := r.queryMenuItemsTx(ctx, tx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MenuItemRepository) Create(ctx context.Context, mi *menuitem.MenuItem) (*menuitem.MenuItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO menu_items (menu_id, product_id, variant_id, price_override, position, is_available, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		mi.MenuID, mi.ProductID, mi.VariantID, mi.PriceOverride, mi.Position, mi.IsAvailable, mi.Status, mi.CreatedAt, mi.UpdatedAt,
	).Scan(&mi.ID); err != nil {
		return nil, unique.MapPgError(menuitem.Resource, err)
	}
	return r.GetByID(ctx, mi.ID)
}

func (r *MenuItemRepository) Update(ctx context.Context, mi *menuitem.MenuItem) (*menuitem.MenuItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE menu_items
		SET price_override = $1, position = $2, is_available = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := tx.Exec(ctx, query, mi.PriceOverride, mi.Position, mi.IsAvailable, mi.Status, mi.UpdatedAt, mi.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update menu item")
	}
	if tag.RowsAffected() == 0 {
		return nil, menuitem.ErrNotFound
	}
	return r.GetByID(ctx, mi.ID)
}

func (r *MenuItemRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]*menuitem.MenuItem, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryMenuItemsTx(ctx, tx, query, append([]any{tenantID}, args...)...)
}

func (r *MenuItemRepository) queryMenuItemsTx(ctx context.Context, tx repo.Tx, query string, args ...any) ([]*menuitem.MenuItem, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query menu items")
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*menuitem.MenuItem, error) {
		var mi menuitem.MenuItem
		err := row.Scan(
			&mi.ID, &mi.MenuID, &mi.ProductID, &mi.VariantID, &mi.PriceOverride, &mi.Position,
			&mi.IsAvailable, &mi.Status, &mi.CreatedAt, &mi.UpdatedAt, &mi.MenuName, &mi.ProductName, &mi.VariantName,
		)
		return &mi, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan menu items")
	}
	return out, nil
}

package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menucategory"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/repo"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

// menuCategoryChain walks the association up to the tenant: through the menu,
// which must be active, and the store, which must be ACTIVE. The categories
// join carries the name snippet and pins the category to an existing row.
var menuCategoryChain = scope.Chain{
	Leaf: "menu_categories mc",
	Links: []scope.Link{
		{Table: "menus m", On: "m.id = mc.menu_id", Active: "m.is_active"},
		{Table: "stores s", On: "s.id = m.store_id", Active: "s.status = 'ACTIVE'"},
		{Table: "categories c", On: "c.id = mc.category_id"},
	},
	TenantColumn: "s.tenant_id",
}

var menuCategorySort = pagination.SortSpec{
	Allowed: map[string]string{
		"position":   "mc.position",
		"created_at": "mc.created_at",
		"updated_at": "mc.updated_at",
	},
	DefaultColumn: "mc.created_at",
	DefaultDesc:   true,
	TieBreak:      "mc.id",
}

const menuCategoryColumns = "mc.id, mc.menu_id, mc.category_id, mc.position, mc.status, mc.created_at, mc.updated_at, m.name, c.name"

type MenuCategoryRepository struct{}

func NewMenuCategoryRepository() menucategory.Repository {
	return &MenuCategoryRepository{}
}

// GetByID returns the association regardless of its lifecycle status; the
// service layer decides whether a deleted row is visible for the operation.
func (r *MenuCategoryRepository) GetByID(ctx context.Context, id int64) (*menucategory.MenuCategory, error) {
	out, err := r.queryMenuCategories(ctx, menuCategoryChain.Query(menuCategoryColumns, "mc.id = $2"), id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, menucategory.ErrNotFound
	}
	return out[0], nil
}

func (r *MenuCategoryRepository) GetPaginated(
	ctx context.Context,
	params menucategory.FindParams,
	pg pagination.Params,
) ([]*menucategory.MenuCategory, int64, error) {
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
		filters = append(filters, repo.Eq("mc.menu_id", *params.MenuID))
	}
	if params.CategoryID != nil {
		filters = append(filters, repo.Eq("mc.category_id", *params.CategoryID))
	}
	if params.Status != nil {
		filters = append(filters, repo.Eq("mc.status", *params.Status))
	}
	if params.CreatedFrom != nil {
		filters = append(filters, repo.Gte("mc.created_at", *params.CreatedFrom))
	}
	if params.CreatedTo != nil {
		filters = append(filters, repo.Lte("mc.created_at", *params.CreatedTo))
	}

	where, args := repo.BuildWhere(filters, 2)
	var conditions []string
	if where != "" {
		conditions = append(conditions, where)
	}
	queryArgs := append([]any{tenantID}, args...)

	var total int64
	if err := tx.QueryRow(ctx, menuCategoryChain.Query("COUNT(*)", conditions...), queryArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count menu categories")
	}

	query := fmt.Sprintf(
		"%s %s LIMIT %d OFFSET %d",
		menuCategoryChain.Query(menuCategoryColumns, conditions...),
		menuCategorySort.OrderClause(pg),
		pg.Limit,
		pg.Offset(),
	)
	out, err := r.queryMenuCategoriesTx(ctx, tx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MenuCategoryRepository) Create(ctx context.Context, mc *menucategory.MenuCategory) (*menucategory.MenuCategory, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO menu_categories (menu_id, category_id, position, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		mc.MenuID, mc.CategoryID, mc.Position, mc.Status, mc.CreatedAt, mc.UpdatedAt,
	).Scan(&mc.ID); err != nil {
		return nil, unique.MapPgError(menucategory.Resource, err)
	}
	return r.GetByID(ctx, mc.ID)
}

func (r *MenuCategoryRepository) Update(ctx context.Context, mc *menucategory.MenuCategory) (*menucategory.MenuCategory, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE menu_categories
		SET category_id = $1, position = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	tag, err := tx.Exec(ctx, query, mc.CategoryID, mc.Position, mc.Status, mc.UpdatedAt, mc.ID)
	if err != nil {
		return nil, unique.MapPgError(menucategory.Resource, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, menucategory.ErrNotFound
	}
	return r.GetByID(ctx, mc.ID)
}

func (r *MenuCategoryRepository) queryMenuCategories(ctx context.Context, query string, args ...any) ([]*menucategory.MenuCategory, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryMenuCategoriesTx(ctx, tx, query, append([]any{tenantID}, args...)...)
}

func (r *MenuCategoryRepository) queryMenuCategoriesTx(ctx context.Context, tx repo.Tx, query string, args ...any) ([]*menucategory.MenuCategory, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query menu categories")
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*menucategory.MenuCategory, error) {
		var mc menucategory.MenuCategory
		err := row.Scan(
			&mc.ID, &mc.MenuID, &mc.CategoryID, &mc.Position, &mc.Status,
			&mc.CreatedAt, &mc.UpdatedAt, &mc.MenuName, &mc.CategoryName,
		)
		return &mc, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan menu categories")
	}
	return out, nil
}

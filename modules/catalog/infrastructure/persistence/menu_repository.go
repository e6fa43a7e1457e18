package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menu"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
)

// menuChain resolves a menu to its tenant through the owning store. An
// inactive store breaks the chain, so menus of suspended stores are invisible.
var menuChain = scope.Chain{
	Leaf: "menus m",
	Links: []scope.Link{
		{Table: "stores s", On: "s.id = m.store_id", Active: "s.status = 'ACTIVE'"},
	},
	TenantColumn: "s.tenant_id",
}

const menuColumns = "m.id, m.store_id, m.name, m.is_active, m.available_from, m.available_until, m.created_at, m.updated_at, s.name"

type MenuRepository struct{}

func NewMenuRepository() menu.Repository {
	return &MenuRepository{}
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (*menu.Menu, error) {
	menus, err := r.queryMenus(ctx, menuChain.Query(menuColumns, "m.id = $2"), id)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, menu.ErrNotFound
	}
	return menus[0], nil
}

func (r *MenuRepository) Create(ctx context.Context, m *menu.Menu) (*menu.Menu, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO menus (store_id, name, is_active, available_from, available_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		m.StoreID, m.Name, m.IsActive, m.AvailableFrom, m.AvailableUntil, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create menu")
	}
	return r.GetByID(ctx, m.ID)
}

func (r *MenuRepository) List(ctx context.Context) ([]*menu.Menu, error) {
	return r.queryMenus(ctx, menuChain.Query(menuColumns)+" ORDER BY m.created_at ASC, m.id ASC")
}

func (r *MenuRepository) queryMenus(ctx context.Context, query string, args ...any) ([]*menu.Menu, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, append([]any{tenantID}, args...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query menus")
	}
	defer rows.Close()

	menus, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*menu.Menu, error) {
		var m menu.Menu
		err := row.Scan(&m.ID, &m.StoreID, &m.Name, &m.IsActive, &m.AvailableFrom, &m.AvailableUntil, &m.CreatedAt, &m.UpdatedAt, &m.StoreName)
		return &m, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan menus")
	}
	return menus, nil
}

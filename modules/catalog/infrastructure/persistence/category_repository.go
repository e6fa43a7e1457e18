package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/category"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

const (
	categoryFindQuery = `
		SELECT id, tenant_id, name, parent_id, is_active, created_at, updated_at
		FROM categories`
)

type CategoryRepository struct{}

func NewCategoryRepository() category.Repository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Node, error) {
	nodes, err := r.queryCategories(ctx, categoryFindQuery+" WHERE id = $1 AND tenant_id = $2", id)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, category.ErrNotFound
	}
	return nodes[0], nil
}

func (r *CategoryRepository) Create(ctx context.Context, n *category.Node) (*category.Node, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO categories (tenant_id, name, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		n.TenantID, n.Name, n.ParentID, n.IsActive, n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}
	return r.GetByID(ctx, n.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, n *category.Node) (*category.Node, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE categories
		SET name = $1, parent_id = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6
	`
	tag, err := tx.Exec(ctx, query, n.Name, n.ParentID, n.IsActive, time.Now(), n.ID, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return nil, category.ErrNotFound
	}
	return r.GetByID(ctx, n.ID)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Node, error) {
	return r.queryCategories(ctx, categoryFindQuery+" WHERE tenant_id = $1 ORDER BY name ASC, id ASC")
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*category.Node, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// tenant id is always the last placeholder in category queries
	rows, err := tx.Query(ctx, query, append(args, tenantID)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query categories")
	}
	defer rows.Close()

	nodes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*category.Node, error) {
		var n category.Node
		err := row.Scan(&n.ID, &n.TenantID, &n.Name, &n.ParentID, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
		return &n, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan categories")
	}
	return nodes, nil
}

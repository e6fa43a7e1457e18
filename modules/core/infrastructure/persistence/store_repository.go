package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/core/domain/entities/store"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

const (
	storeFindQuery = `SELECT id, tenant_id, name, status, created_at, updated_at FROM stores`
)

type StoreRepository struct{}

func NewStoreRepository() store.Repository {
	return &StoreRepository{}
}

func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*store.Store, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var s store.Store
	err = tx.QueryRow(ctx, storeFindQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) Create(ctx context.Context, s *store.Store) (*store.Store, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO stores (tenant_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, s.TenantID, s.Name, s.Status, s.CreatedAt, s.UpdatedAt).Scan(&s.ID); err != nil {
		return nil, err
	}
	return r.GetByID(composables.WithTenantID(ctx, s.TenantID), s.ID)
}

func (r *StoreRepository) List(ctx context.Context) ([]*store.Store, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, storeFindQuery+" WHERE tenant_id = $1 ORDER BY created_at ASC, id ASC", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*store.Store
	for rows.Next() {
		var s store.Store
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

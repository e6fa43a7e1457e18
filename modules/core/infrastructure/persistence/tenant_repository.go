package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/vendra-hq/vendra-sdk/modules/core/domain/entities/tenant"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

const (
	tenantFindQuery = `SELECT id, name, is_active, created_at, updated_at FROM tenants`
)

type TenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &TenantRepository{}
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	tenants, err := r.queryTenants(ctx, tenantFindQuery+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, tenant.ErrNotFound
	}
	return tenants[0], nil
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tenants (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, t.ID(), t.Name(), t.IsActive(), t.CreatedAt(), t.UpdatedAt()); err != nil {
		return nil, errors.Wrap(err, "failed to create tenant")
	}
	return r.GetByID(ctx, t.ID())
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return r.queryTenants(ctx, tenantFindQuery+" ORDER BY created_at ASC")
}

func (r *TenantRepository) queryTenants(ctx context.Context, query string, args ...any) ([]*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tenants")
	}
	defer rows.Close()

	var out []*tenant.Tenant
	for rows.Next() {
		var (
			id                 uuid.UUID
			name               string
			isActive           bool
			createdAt, updated time.Time
		)
		if err := rows.Scan(&id, &name, &isActive, &createdAt, &updated); err != nil {
			return nil, errors.Wrap(err, "failed to scan tenant row")
		}
		out = append(out, tenant.New(
			name,
			tenant.WithID(id),
			tenant.WithIsActive(isActive),
			tenant.WithCreatedAt(createdAt),
			tenant.WithUpdatedAt(updated),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return out, nil
}

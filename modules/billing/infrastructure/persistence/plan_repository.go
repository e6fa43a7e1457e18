package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/plan"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

type PlanRepository struct{}

func NewPlanRepository() plan.Repository {
	return &PlanRepository{}
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*plan.Plan, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, tenant_id, name, monthly_price, is_active, created_at, updated_at
		FROM plans
		WHERE id = $1 AND tenant_id = $2 AND is_active
	`
	var p plan.Plan
	err = tx.QueryRow(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.MonthlyPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, plan.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) (*plan.Plan, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO plans (tenant_id, name, monthly_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		p.TenantID, p.Name, p.MonthlyPrice, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID); err != nil {
		return nil, err
	}
	return r.GetByID(composables.WithTenantID(ctx, p.TenantID), p.ID)
}

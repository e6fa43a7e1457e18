package plan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewNotFound("PLAN_NOT_FOUND", "plan not found")

// Plan is a billable subscription tier owned directly by a tenant.
type Plan struct {
	ID           int64
	TenantID     uuid.UUID
	Name         string
	MonthlyPrice decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(tenantID uuid.UUID, name string, monthlyPrice decimal.Decimal) *Plan {
	now := time.Now()
	return &Plan{
		TenantID:     tenantID,
		Name:         name,
		MonthlyPrice: monthlyPrice,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

type Repository interface {
	// GetByID only resolves active plans of the calling tenant.
	GetByID(ctx context.Context, id int64) (*Plan, error)
	Create(ctx context.Context, p *Plan) (*Plan, error)
}

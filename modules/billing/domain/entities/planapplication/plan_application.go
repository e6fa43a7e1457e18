package planapplication

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

const Resource unique.Resource = "plan_application"

var ErrNotFound = serrors.NewNotFound("PLAN_APPLICATION_NOT_FOUND", "plan application not found")

func init() {
	unique.Register(unique.Definition{
		Resource:        Resource,
		Table:           "plan_applications",
		KeyColumns:      []string{"plan_id", "application_ref"},
		ConflictMessage: "Application is already subscribed to this plan",
	})
}

// PlanApplication subscribes an external application, identified by its ref
// code, to a billing plan.
type PlanApplication struct {
	ID             int64
	PlanID         int64
	ApplicationRef string
	Status         lifecycle.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	PlanName string
}

func New(planID int64, applicationRef string) *PlanApplication {
	now := time.Now()
	return &PlanApplication{
		PlanID:         planID,
		ApplicationRef: applicationRef,
		Status:         lifecycle.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type UpdateData struct {
	ApplicationRef *string
}

type FindParams struct {
	PlanID      *int64
	Status      *lifecycle.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*PlanApplication, error)
	GetPaginated(ctx context.Context, params FindParams, pg pagination.Params) ([]*PlanApplication, int64, error)
	Create(ctx context.Context, pa *PlanApplication) (*PlanApplication, error)
	Update(ctx context.Context, pa *PlanApplication) (*PlanApplication, error)
}

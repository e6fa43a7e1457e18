package services

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/plan"
	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/planapplication"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

var checkUniqueFn = unique.Check

var ErrEmptyApplicationRef = serrors.NewBadRequest("EMPTY_APPLICATION_REF", "Application ref is required", "applicationRef")

type PlanApplicationService struct {
	repo      planapplication.Repository
	plans     plan.Repository
	publisher eventbus.EventBus
}

func NewPlanApplicationService(
	repo planapplication.Repository,
	plans plan.Repository,
	publisher eventbus.EventBus,
) *PlanApplicationService {
	return &PlanApplicationService{
		repo:      repo,
		plans:     plans,
		publisher: publisher,
	}
}

// Create subscribes an application to a plan. One active subscription per
// (plan, application ref) pair.
func (s *PlanApplicationService) Create(ctx context.Context, planID int64, applicationRef string) (*planapplication.PlanApplication, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	if applicationRef == "" {
		return nil, ErrEmptyApplicationRef
	}
	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		return nil, err
	}
	if err := checkUniqueFn(ctx, planapplication.Resource, []any{planID, applicationRef}, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, planapplication.New(planID, applicationRef))
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(planapplication.CreatedEvent{Result: *created})
	return created, nil
}

func (s *PlanApplicationService) Get(ctx context.Context, id int64) (*planapplication.PlanApplication, error) {
	pa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pa.Status == lifecycle.Deleted {
		return nil, planapplication.ErrNotFound
	}
	return pa, nil
}

func (s *PlanApplicationService) List(
	ctx context.Context,
	params planapplication.FindParams,
	pg pagination.Params,
) ([]*planapplication.PlanApplication, pagination.Meta, error) {
	if err := pg.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}
	if params.Status == nil {
		// deleted rows stay hidden unless a status filter asks for them
		active := lifecycle.Active
		params.Status = &active
	}
	out, total, err := s.repo.GetPaginated(ctx, params, pg)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return out, pagination.NewMeta(pg, total), nil
}

// Update re-points the subscription at another application ref, re-running
// the duplicate guard excluding this row.
func (s *PlanApplicationService) Update(ctx context.Context, id int64, data planapplication.UpdateData) (*planapplication.PlanApplication, error) {
	pa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.AssertMutable(pa.Status); err != nil {
		return nil, err
	}

	if data.ApplicationRef != nil && *data.ApplicationRef != pa.ApplicationRef {
		if *data.ApplicationRef == "" {
			return nil, ErrEmptyApplicationRef
		}
		if err := checkUniqueFn(ctx, planapplication.Resource, []any{pa.PlanID, *data.ApplicationRef}, pa.ID); err != nil {
			return nil, err
		}
		pa.ApplicationRef = *data.ApplicationRef
	}
	pa.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, pa)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(planapplication.UpdatedEvent{Result: *updated})
	return updated, nil
}

func (s *PlanApplicationService) Delete(ctx context.Context, id int64) (*planapplication.PlanApplication, error) {
	pa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Delete(pa.Status)
	if err != nil {
		return nil, err
	}
	pa.Status = next
	pa.UpdatedAt = time.Now()

	deleted, err := s.repo.Update(ctx, pa)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(planapplication.DeletedEvent{Result: *deleted})
	return deleted, nil
}

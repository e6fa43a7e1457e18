package services

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/category"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menu"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menucategory"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

// checkUniqueFn is overridable in tests so the duplicate guard can be
// exercised without a database.
var checkUniqueFn = unique.Check

var ErrNegativePosition = serrors.NewBadRequest("NEGATIVE_POSITION", "Position must be greater than or equal to 0", "position")

type MenuCategoryService struct {
	repo       menucategory.Repository
	menus      menu.Repository
	categories category.Repository
	publisher  eventbus.EventBus
}

func NewMenuCategoryService(
	repo menucategory.Repository,
	menus menu.Repository,
	categories category.Repository,
	publisher eventbus.EventBus,
) *MenuCategoryService {
	return &MenuCategoryService{
		repo:       repo,
		menus:      menus,
		categories: categories,
		publisher:  publisher,
	}
}

// Create attaches a category to a menu. Both parents must resolve for the
// calling tenant, and the (menu, category) pair must not already be attached
// among active rows.
func (s *MenuCategoryService) Create(ctx context.Context, menuID, categoryID int64, position int) (*menucategory.MenuCategory, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	if position < 0 {
		return nil, ErrNegativePosition
	}
	if _, err := s.menus.GetByID(ctx, menuID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	if err := checkUniqueFn(ctx, menucategory.Resource, []any{menuID, categoryID}, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, menucategory.New(menuID, categoryID, position))
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menucategory.CreatedEvent{Result: *created})
	return created, nil
}

// Get returns a single attachment. Soft-deleted rows are invisible to reads.
func (s *MenuCategoryService) Get(ctx context.Context, id int64) (*menucategory.MenuCategory, error) {
	mc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mc.Status == lifecycle.Deleted {
		return nil, menucategory.ErrNotFound
	}
	return mc, nil
}

func (s *MenuCategoryService) List(
	ctx context.Context,
	params menucategory.FindParams,
	pg pagination.Params,
) ([]*menucategory.MenuCategory, pagination.Meta, error) {
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

// Update re-points or re-orders the attachment. A deleted row rejects every
// mutation; a category change re-runs the duplicate guard excluding this row.
func (s *MenuCategoryService) Update(ctx context.Context, id int64, data menucategory.UpdateData) (*menucategory.MenuCategory, error) {
	mc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.AssertMutable(mc.Status); err != nil {
		return nil, err
	}

	if data.CategoryID != nil && *data.CategoryID != mc.CategoryID {
		if _, err := s.categories.GetByID(ctx, *data.CategoryID); err != nil {
			return nil, err
		}
		if err := checkUniqueFn(ctx, menucategory.Resource, []any{mc.MenuID, *data.CategoryID}, mc.ID); err != nil {
			return nil, err
		}
		mc.CategoryID = *data.CategoryID
	}
	if data.Position != nil {
		if *data.Position < 0 {
			return nil, ErrNegativePosition
		}
		mc.Position = *data.Position
	}
	mc.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, mc)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menucategory.UpdatedEvent{Result: *updated})
	return updated, nil
}

// Delete is the soft delete. Deleting twice is a conflict.
func (s *MenuCategoryService) Delete(ctx context.Context, id int64) (*menucategory.MenuCategory, error) {
	mc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Delete(mc.Status)
	if err != nil {
		return nil, err
	}
	mc.Status = next
	mc.UpdatedAt = time.Now()

	deleted, err := s.repo.Update(ctx, mc)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menucategory.DeletedEvent{Result: *deleted})
	return deleted, nil
}

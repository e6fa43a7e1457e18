package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menu"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menuitem"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/product"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNegativePriceOverride = serrors.NewBadRequest(
	"NEGATIVE_PRICE_OVERRIDE",
	"Price override must be greater than or equal to 0",
	"priceOverride",
)

type MenuItemService struct {
	repo      menuitem.Repository
	menus     menu.Repository
	products  product.Repository
	publisher eventbus.EventBus
}

func NewMenuItemService(
	repo menuitem.Repository,
	menus menu.Repository,
	products product.Repository,
	publisher eventbus.EventBus,
) *MenuItemService {
	return &MenuItemService{
		repo:      repo,
		menus:     menus,
		products:  products,
		publisher: publisher,
	}
}

type MenuItemCreateData struct {
	MenuID        int64
	ProductID     int64
	VariantID     *int64
	PriceOverride *decimal.Decimal
	Position      int
}

// Create puts a product on a menu. A nil variant means the plain product and
// collides with other nil-variant rows of the same product; the duplicate
// guard treats NULL as a value, not a wildcard.
func (s *MenuItemService) Create(ctx context.Context, data MenuItemCreateData) (*menuitem.MenuItem, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	if data.Position < 0 {
		return nil, ErrNegativePosition
	}
	if data.PriceOverride != nil && data.PriceOverride.IsNegative() {
		return nil, ErrNegativePriceOverride
	}
	if _, err := s.menus.GetByID(ctx, data.MenuID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, data.ProductID); err != nil {
		return nil, err
	}
	if data.VariantID != nil {
		if _, err := s.products.GetVariant(ctx, data.ProductID, *data.VariantID); err != nil {
			return nil, err
		}
	}
	if err := checkUniqueFn(ctx, menuitem.Resource, []any{data.MenuID, data.ProductID, data.VariantID}, 0); err != nil {
		return nil, err
	}

	mi := menuitem.New(data.MenuID, data.ProductID, data.VariantID)
	mi.PriceOverride = data.PriceOverride
	mi.Position = data.Position

	created, err := s.repo.Create(ctx, mi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menuitem.CreatedEvent{Result: *created})
	return created, nil
}

func (s *MenuItemService) Get(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	mi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mi.Status == lifecycle.Deleted {
		return nil, menuitem.ErrNotFound
	}
	return mi, nil
}

func (s *MenuItemService) List(
	ctx context.Context,
	params menuitem.FindParams,
	pg pagination.Params,
) ([]*menuitem.MenuItem, pagination.Meta, error) {
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

// Update changes presentation fields only; the (menu, product, variant) key
// is immutable, so no duplicate re-check is needed.
func (s *MenuItemService) Update(ctx context.Context, id int64, data menuitem.UpdateData) (*menuitem.MenuItem, error) {
	mi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.AssertMutable(mi.Status); err != nil {
		return nil, err
	}

	if data.PriceOverride != nil {
		if data.PriceOverride.IsNegative() {
			return nil, ErrNegativePriceOverride
		}
		mi.PriceOverride = data.PriceOverride
	}
	if data.Position != nil {
		if *data.Position < 0 {
			return nil, ErrNegativePosition
		}
		mi.Position = *data.Position
	}
	if data.IsAvailable != nil {
		mi.IsAvailable = *data.IsAvailable
	}
	mi.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, mi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menuitem.UpdatedEvent{Result: *updated})
	return updated, nil
}

func (s *MenuItemService) Delete(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	mi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Delete(mi.Status)
	if err != nil {
		return nil, err
	}
	mi.Status = next
	mi.UpdatedAt = time.Now()

	deleted, err := s.repo.Update(ctx, mi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(menuitem.DeletedEvent{Result: *deleted})
	return deleted, nil
}

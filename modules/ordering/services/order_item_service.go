package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/product"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/order"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/domain/entities/orderitem"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

var checkUniqueFn = unique.Check

type OrderItemService struct {
	repo      orderitem.Repository
	orders    order.Repository
	products  product.Repository
	publisher eventbus.EventBus
}

func NewOrderItemService(
	repo orderitem.Repository,
	orders order.Repository,
	products product.Repository,
	publisher eventbus.EventBus,
) *OrderItemService {
	return &OrderItemService{
		repo:      repo,
		orders:    orders,
		products:  products,
		publisher: publisher,
	}
}

type OrderItemCreateData struct {
	OrderID   int64
	ProductID int64
	VariantID *int64
	Quantity  int
	UnitPrice decimal.Decimal
	Notes     string
}

// Create adds a line to an order. One active line per (product, variant)
// pair: a repeat is a conflict, callers adjust the quantity instead. A nil
// variant collides with other nil-variant lines of the same product.
func (s *OrderItemService) Create(ctx context.Context, data OrderItemCreateData) (*orderitem.OrderItem, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	if data.Quantity < 1 {
		return nil, orderitem.ErrInvalidQuantity
	}
	if data.UnitPrice.IsNegative() {
		return nil, orderitem.ErrInvalidUnitPrice
	}
	if _, err := s.orders.GetByID(ctx, data.OrderID); err != nil {
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
	if err := checkUniqueFn(ctx, orderitem.Resource, []any{data.OrderID, data.ProductID, data.VariantID}, 0); err != nil {
		return nil, err
	}

	oi := orderitem.New(data.OrderID, data.ProductID, data.VariantID, data.Quantity, data.UnitPrice)
	oi.Notes = data.Notes

	created, err := s.repo.Create(ctx, oi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(orderitem.CreatedEvent{Result: *created})
	return created, nil
}

func (s *OrderItemService) Get(ctx context.Context, id int64) (*orderitem.OrderItem, error) {
	oi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if oi.Status == lifecycle.Deleted {
		return nil, orderitem.ErrNotFound
	}
	return oi, nil
}

func (s *OrderItemService) List(
	ctx context.Context,
	params orderitem.FindParams,
	pg pagination.Params,
) ([]*orderitem.OrderItem, pagination.Meta, error) {
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

func (s *OrderItemService) Update(ctx context.Context, id int64, data orderitem.UpdateData) (*orderitem.OrderItem, error) {
	oi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.AssertMutable(oi.Status); err != nil {
		return nil, err
	}

	if data.Quantity != nil {
		if *data.Quantity < 1 {
			return nil, orderitem.ErrInvalidQuantity
		}
		oi.Quantity = *data.Quantity
	}
	if data.UnitPrice != nil {
		if data.UnitPrice.IsNegative() {
			return nil, orderitem.ErrInvalidUnitPrice
		}
		oi.UnitPrice = *data.UnitPrice
	}
	if data.Notes != nil {
		oi.Notes = *data.Notes
	}
	oi.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, oi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(orderitem.UpdatedEvent{Result: *updated})
	return updated, nil
}

func (s *OrderItemService) Delete(ctx context.Context, id int64) (*orderitem.OrderItem, error) {
	oi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Delete(oi.Status)
	if err != nil {
		return nil, err
	}
	oi.Status = next
	oi.UpdatedAt = time.Now()

	deleted, err := s.repo.Update(ctx, oi)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(orderitem.DeletedEvent{Result: *deleted})
	return deleted, nil
}

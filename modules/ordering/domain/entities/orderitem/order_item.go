package orderitem

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

const Resource unique.Resource = "order_item"

var (
	ErrNotFound         = serrors.NewNotFound("ORDER_ITEM_NOT_FOUND", "order item not found")
	ErrInvalidQuantity  = serrors.NewBadRequest("INVALID_QUANTITY", "Quantity must be greater than 0", "quantity")
	ErrInvalidUnitPrice = serrors.NewBadRequest("INVALID_UNIT_PRICE", "Unit price must be greater than or equal to 0", "unitPrice")
)

func init() {
	unique.Register(unique.Definition{
		Resource:        Resource,
		Table:           "order_items",
		KeyColumns:      []string{"order_id", "product_id", "variant_id"},
		ConflictMessage: "Product is already in this order",
	})
}

// OrderItem is one line of an order. VariantID nil means the plain product;
// two nil-variant lines for the same product collide just like two lines for
// the same variant do. Quantity changes go through Update rather than a
// second Create for the same product.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	VariantID *int64
	Quantity  int
	UnitPrice decimal.Decimal
	Notes     string
	Status    lifecycle.Status
	CreatedAt time.Time
	UpdatedAt time.Time

	OrderNumber string
	ProductName string
	VariantName *string
}

func New(orderID, productID int64, variantID *int64, quantity int, unitPrice decimal.Decimal) *OrderItem {
	now := time.Now()
	return &OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Status:    lifecycle.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Total is quantity times unit price.
func (oi *OrderItem) Total() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

type UpdateData struct {
	Quantity  *int
	UnitPrice *decimal.Decimal
	Notes     *string
}

type FindParams struct {
	OrderID     *int64
	ProductID   *int64
	Status      *lifecycle.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*OrderItem, error)
	GetPaginated(ctx context.Context, params FindParams, pg pagination.Params) ([]*OrderItem, int64, error)
	Create(ctx context.Context, oi *OrderItem) (*OrderItem, error)
	Update(ctx context.Context, oi *OrderItem) (*OrderItem, error)
}

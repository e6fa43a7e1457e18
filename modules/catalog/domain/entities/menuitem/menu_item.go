package menuitem

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

const Resource unique.Resource = "menu_item"

var ErrNotFound = serrors.NewNotFound("MENU_ITEM_NOT_FOUND", "menu item not found")

func init() {
	unique.Register(unique.Definition{
		Resource:        Resource,
		Table:           "menu_items",
		KeyColumns:      []string{"menu_id", "product_id", "variant_id"},
		ConflictMessage: "Product is already on this menu",
	})
}

// MenuItem puts a product, optionally a specific variant of it, on a menu.
// VariantID nil means the plain product; two nil-variant rows for the same
// product collide just like two rows for the same variant do.
type MenuItem struct {
	ID            int64
	MenuID        int64
	ProductID     int64
	VariantID     *int64
	PriceOverride *decimal.Decimal
	Position      int
	// IsAvailable hides a sold-out item from guests without detaching it.
	IsAvailable bool
	Status      lifecycle.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	MenuName    string
	ProductName string
	VariantName *string
}

func New(menuID, productID int64, variantID *int64) *MenuItem {
	now := time.Now()
	return &MenuItem{
		MenuID:      menuID,
		ProductID:   productID,
		VariantID:   variantID,
		IsAvailable: true,
		Status:      lifecycle.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type UpdateData struct {
	PriceOverride *decimal.Decimal
	Position      *int
	IsAvailable   *bool
}

type FindParams struct {
	MenuID      *int64
	ProductID   *int64
	IsAvailable *bool
	Status      *lifecycle.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	GetPaginated(ctx context.Context, params FindParams, pg pagination.Params) ([]*MenuItem, int64, error)
	Create(ctx context.Context, mi *MenuItem) (*MenuItem, error)
	Update(ctx context.Context, mi *MenuItem) (*MenuItem, error)
}

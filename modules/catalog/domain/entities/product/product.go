package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var (
	ErrNotFound        = serrors.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	ErrVariantNotFound = serrors.NewNotFound("VARIANT_NOT_FOUND", "variant not found")
)

type Product struct {
	ID        int64
	TenantID  uuid.UUID
	Name      string
	BasePrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant is a concrete sellable variation of a product (size, flavor).
// A variant only resolves through its owning product.
type Variant struct {
	ID        int64
	ProductID int64
	Name      string
	PriceDiff decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	// GetByID is tenant-scoped and only returns active products.
	GetByID(ctx context.Context, id int64) (*Product, error)
	// GetVariant resolves a variant only when it belongs to the given
	// product; anything else is ErrVariantNotFound.
	GetVariant(ctx context.Context, productID, variantID int64) (*Variant, error)
}

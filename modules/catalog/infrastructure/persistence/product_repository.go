package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/product"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

type ProductRepository struct{}

func NewProductRepository() product.Repository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, tenant_id, name, base_price, is_active, created_at, updated_at
		FROM products
		WHERE id = $1 AND tenant_id = $2 AND is_active
	`
	var p product.Product
	err = tx.QueryRow(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.BasePrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetVariant(ctx context.Context, productID, variantID int64) (*product.Variant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	// productID is already tenant-checked by the caller's GetByID; the
	// variant only needs to hang off that product.
	query := `
		SELECT id, product_id, name, price_diff, created_at, updated_at
		FROM product_variants
		WHERE id = $1 AND product_id = $2
	`
	var v product.Variant
	err = tx.QueryRow(ctx, query, variantID, productID).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.PriceDiff, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrVariantNotFound
		}
		return nil, err
	}
	return &v, nil
}

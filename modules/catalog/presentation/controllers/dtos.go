package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menucategory"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/menuitem"
	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func decodeAndValidate(r *http.Request, dto any) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return serrors.NewBadRequest("INVALID_BODY", "request body is not valid JSON", "")
	}
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			fe := vErrs[0]
			if fe.Tag() == "required" {
				return serrors.NewFieldRequiredError(fe.Field())
			}
			return serrors.NewBadRequest("VALIDATION_ERROR", fe.Field()+" failed validation on "+fe.Tag(), fe.Field())
		}
		return err
	}
	return nil
}

type CreateMenuCategoryDTO struct {
	MenuID     int64 `json:"menuId" validate:"required,gt=0"`
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
	Position   int   `json:"position" validate:"gte=0"`
}

type UpdateMenuCategoryDTO struct {
	CategoryID *int64 `json:"categoryId" validate:"omitempty,gt=0"`
	Position   *int   `json:"position" validate:"omitempty,gte=0"`
}

type CreateMenuItemDTO struct {
	MenuID        int64            `json:"menuId" validate:"required,gt=0"`
	ProductID     int64            `json:"productId" validate:"required,gt=0"`
	VariantID     *int64           `json:"variantId" validate:"omitempty,gt=0"`
	PriceOverride *decimal.Decimal `json:"priceOverride"`
	Position      int              `json:"position" validate:"gte=0"`
}

type UpdateMenuItemDTO struct {
	PriceOverride *decimal.Decimal `json:"priceOverride"`
	Position      *int             `json:"position" validate:"omitempty,gte=0"`
	IsAvailable   *bool            `json:"isAvailable"`
}

type MenuCategoryResponse struct {
	ID           int64            `json:"id"`
	MenuID       int64            `json:"menuId"`
	CategoryID   int64            `json:"categoryId"`
	Position     int              `json:"position"`
	Status       lifecycle.Status `json:"status"`
	MenuName     string           `json:"menuName"`
	CategoryName string           `json:"categoryName"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func toMenuCategoryResponse(mc *menucategory.MenuCategory) *MenuCategoryResponse {
	return &MenuCategoryResponse{
		ID:           mc.ID,
		MenuID:       mc.MenuID,
		CategoryID:   mc.CategoryID,
		Position:     mc.Position,
		Status:       mc.Status,
		MenuName:     mc.MenuName,
		CategoryName: mc.CategoryName,
		CreatedAt:    mc.CreatedAt,
		UpdatedAt:    mc.UpdatedAt,
	}
}

func toMenuCategoryResponses(in []*menucategory.MenuCategory) []*MenuCategoryResponse {
	out := make([]*MenuCategoryResponse, 0, len(in))
	for _, mc := range in {
		out = append(out, toMenuCategoryResponse(mc))
	}
	return out
}

type MenuItemResponse struct {
	ID            int64            `json:"id"`
	MenuID        int64            `json:"menuId"`
	ProductID     int64            `json:"productId"`
	VariantID     *int64           `json:"variantId,omitempty"`
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"`
	Position      int              `json:"position"`
	IsAvailable   bool             `json:"isAvailable"`
	Status        lifecycle.Status `json:"status"`
	MenuName      string           `json:"menuName"`
	ProductName   string           `json:"productName"`
	VariantName   *string          `json:"variantName,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func toMenuItemResponse(mi *menuitem.MenuItem) *MenuItemResponse {
	return &MenuItemResponse{
		ID:            mi.ID,
		MenuID:        mi.MenuID,
		ProductID:     mi.ProductID,
		VariantID:     mi.VariantID,
		PriceOverride: mi.PriceOverride,
		Position:      mi.Position,
		IsAvailable:   mi.IsAvailable,
		Status:        mi.Status,
		MenuName:      mi.MenuName,
		ProductName:   mi.ProductName,
		VariantName:   mi.VariantName,
		CreatedAt:     mi.CreatedAt,
		UpdatedAt:     mi.UpdatedAt,
	}
}

func toMenuItemResponses(in []*menuitem.MenuItem) []*MenuItemResponse {
	out := make([]*MenuItemResponse, 0, len(in))
	for _, mi := range in {
		out = append(out, toMenuItemResponse(mi))
	}
	return out
}

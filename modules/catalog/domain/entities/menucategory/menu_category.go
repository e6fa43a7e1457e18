package menucategory

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

const Resource unique.Resource = "menu_category"

var ErrNotFound = serrors.NewNotFound("MENU_CATEGORY_NOT_FOUND", "menu category not found")

func init() {
	unique.Register(unique.Definition{
		Resource:        Resource,
		Table:           "menu_categories",
		KeyColumns:      []string{"menu_id", "category_id"},
		ConflictMessage: "Category is already attached to this menu",
	})
}

// MenuCategory attaches a category to a menu with per-menu ordering.
type MenuCategory struct {
	ID         int64
	MenuID     int64
	CategoryID int64
	Position   int
	Status     lifecycle.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Display snippets populated by reads that join the parents.
	MenuName     string
	CategoryName string
}

func New(menuID, categoryID int64, position int) *MenuCategory {
	now := time.Now()
	return &MenuCategory{
		MenuID:     menuID,
		CategoryID: categoryID,
		Position:   position,
		Status:     lifecycle.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type UpdateData struct {
	CategoryID *int64
	Position   *int
}

type FindParams struct {
	MenuID      *int64
	CategoryID  *int64
	Status      *lifecycle.Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	// GetByID resolves through the menu's ownership chain; rows of any
	// status are returned so callers can distinguish deleted from absent.
	GetByID(ctx context.Context, id int64) (*MenuCategory, error)
	GetPaginated(ctx context.Context, params FindParams, pg pagination.Params) ([]*MenuCategory, int64, error)
	Create(ctx context.Context, mc *MenuCategory) (*MenuCategory, error)
	Update(ctx context.Context, mc *MenuCategory) (*MenuCategory, error)
}

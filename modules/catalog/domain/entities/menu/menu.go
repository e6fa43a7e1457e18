package menu

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewNotFound("MENU_NOT_FOUND", "menu not found")

// Menu belongs to a store; its ownership chain to the tenant runs through
// that store, which must be ACTIVE for the menu to resolve.
type Menu struct {
	ID       int64
	StoreID  int64
	Name     string
	IsActive bool
	// AvailableFrom/AvailableUntil bound the serving window; nil means
	// unbounded on that side.
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// StoreName is a denormalized display snippet, populated on reads.
	StoreName string
}

func New(storeID int64, name string) *Menu {
	now := time.Now()
	return &Menu{
		StoreID:   storeID,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Menu, error)
	Create(ctx context.Context, m *Menu) (*Menu, error)
	List(ctx context.Context) ([]*Menu, error)
}

package order

import (
	"context"
	"time"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewNotFound("ORDER_NOT_FOUND", "order not found")

// Status is the order workflow state. Only OPEN orders accept line changes at
// the service layer; the ownership chain does not care.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPlaced    Status = "PLACED"
	StatusCancelled Status = "CANCELLED"
)

type Order struct {
	ID        int64
	StoreID   int64
	Number    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	StoreName string
}

func New(storeID int64, number string) *Order {
	now := time.Now()
	return &Order{
		StoreID:   storeID,
		Number:    number,
		Status:    StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) (*Order, error)
}

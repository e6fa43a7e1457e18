package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewNotFound("STORE_NOT_FOUND", "store not found")

// Status is the operational state of a store. Inactive stores break every
// ownership chain that passes through them.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Store struct {
	ID        int64
	TenantID  uuid.UUID
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(tenantID uuid.UUID, name string) *Store {
	now := time.Now()
	return &Store{
		TenantID:  tenantID,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	// GetByID returns the store only when it belongs to the tenant in
	// context; foreign stores surface as ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Store, error)
	Create(ctx context.Context, s *Store) (*Store, error)
	List(ctx context.Context) ([]*Store, error)
}

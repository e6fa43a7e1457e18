package category

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

var (
	ErrNotFound = serrors.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	// ErrCorruptHierarchy signals a cycle in the parent graph. The walk fails
	// fast instead of looping forever.
	ErrCorruptHierarchy = serrors.NewConflict("CORRUPT_HIERARCHY", "category hierarchy contains a cycle")
)

// Node is a self-referencing tree node. Parents are re-pointable; nodes are
// never physically removed by this layer.
type Node struct {
	ID        int64
	TenantID  uuid.UUID
	Name      string
	ParentID  *int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(tenantID uuid.UUID, name string, parentID *int64) *Node {
	now := time.Now()
	return &Node{
		TenantID:  tenantID,
		Name:      name,
		ParentID:  parentID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Ref is the ancestor projection: just enough to render a breadcrumb.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Repository interface {
	// GetByID is tenant-scoped; categories of other tenants surface as
	// ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Node, error)
	Create(ctx context.Context, n *Node) (*Node, error)
	Update(ctx context.Context, n *Node) (*Node, error)
	List(ctx context.Context) ([]*Node, error)
}

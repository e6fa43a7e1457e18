package services

import (
	"context"
	"errors"

	"github.com/vendra-hq/vendra-sdk/modules/catalog/domain/entities/category"
)

// maxTreeDepth bounds the ancestor walk. Legitimate trees are shallow; a walk
// this deep means the parent graph has a cycle the visited set missed only
// because ids were re-pointed mid-walk.
const maxTreeDepth = 32

type CategoryTreeService struct {
	repo category.Repository
}

func NewCategoryTreeService(repo category.Repository) *CategoryTreeService {
	return &CategoryTreeService{repo: repo}
}

// Ancestors walks the parent pointers from the given node up to the root and
// returns the chain root-first, immediate parent last. Recomputed fresh on
// every call. A missing start node yields an empty list, not an error:
// callers render an empty breadcrumb for orphaned references.
func (s *CategoryTreeService) Ancestors(ctx context.Context, categoryID int64) ([]category.Ref, error) {
	node, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return []category.Ref{}, nil
		}
		return nil, err
	}

	refs := make([]category.Ref, 0)
	visited := map[int64]struct{}{node.ID: {}}

	for node.ParentID != nil {
		parentID := *node.ParentID
		if _, seen := visited[parentID]; seen {
			return nil, category.ErrCorruptHierarchy
		}
		if len(visited) >= maxTreeDepth {
			return nil, category.ErrCorruptHierarchy
		}

		parent, err := s.repo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, category.ErrNotFound) {
				// dangling parent pointer: the chain simply ends here
				break
			}
			return nil, err
		}
		refs = append([]category.Ref{{ID: parent.ID, Name: parent.Name}}, refs...)
		visited[parent.ID] = struct{}{}
		node = parent
	}
	return refs, nil
}

package composables

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendra-hq/vendra-sdk/pkg/constants"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

// ErrNoTenant is a Forbidden-class error: ownership cannot be checked for an
// anonymous caller, so absence of a tenant is never treated as public access.
var ErrNoTenant = serrors.NewForbidden("NO_TENANT", "tenant context is required")

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoTenant
	}
	return id, nil
}

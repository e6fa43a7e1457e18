package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vendra-hq/vendra-sdk/modules/core/domain/entities/store"
	"github.com/vendra-hq/vendra-sdk/modules/core/domain/entities/tenant"
	"github.com/vendra-hq/vendra-sdk/modules/core/infrastructure/persistence"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

// DefaultTenantID is the tenant provisioned for local development.
var DefaultTenantID = uuid.MustParse("11111111-1111-4111-8111-111111111111")

// CreateDefaultTenant provisions the development tenant and one active store
// under it. Idempotent: an existing tenant is left untouched.
func CreateDefaultTenant(ctx context.Context, app application.Application) error {
	tenants := persistence.NewTenantRepository()
	stores := persistence.NewStoreRepository()

	t, err := tenants.GetByID(ctx, DefaultTenantID)
	if err != nil && !errors.Is(err, tenant.ErrNotFound) {
		return err
	}
	if t != nil {
		return nil
	}

	t, err = tenants.Create(ctx, tenant.New("Default", tenant.WithID(DefaultTenantID)))
	if err != nil {
		return errors.Wrap(err, "failed to seed default tenant")
	}

	scoped := composables.WithTenantID(ctx, t.ID())
	if _, err := stores.Create(scoped, store.New(t.ID(), "Main Street")); err != nil {
		return errors.Wrap(err, "failed to seed default store")
	}
	return nil
}

package itf

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vendra-hq/vendra-sdk/pkg/composables"
)

// TestContext builds request-shaped contexts for service tests: tenant and
// logger wired the same way the HTTP middleware would.
type TestContext struct {
	ctx context.Context
}

func NewTestContext() *TestContext {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &TestContext{
		ctx: composables.WithLogger(context.Background(), logrus.NewEntry(logger)),
	}
}

func (tc *TestContext) WithTenantID(tenantID uuid.UUID) *TestContext {
	tc.ctx = composables.WithTenantID(tc.ctx, tenantID)
	return tc
}

func (tc *TestContext) Build() context.Context {
	return tc.ctx
}

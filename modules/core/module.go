package core

import (
	"github.com/vendra-hq/vendra-sdk/modules/core/seed"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	app.Seeder().Register(seed.CreateDefaultTenant)
	return nil
}

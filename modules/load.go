package modules

import (
	"github.com/vendra-hq/vendra-sdk/modules/billing"
	"github.com/vendra-hq/vendra-sdk/modules/catalog"
	"github.com/vendra-hq/vendra-sdk/modules/core"
	"github.com/vendra-hq/vendra-sdk/modules/ordering"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
)

// BuiltInModules is the default module set, loaded in dependency order.
var BuiltInModules = []application.Module{
	core.NewModule(),
	catalog.NewModule(),
	ordering.NewModule(),
	billing.NewModule(),
}

// Load registers every built-in module with the application.
func Load(app application.Application) error {
	modules := make([]application.Module, 0, len(BuiltInModules))
	modules = append(modules, BuiltInModules...)
	return application.Load(app, modules...)
}

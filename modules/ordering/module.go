package ordering

import (
	catalogpersistence "github.com/vendra-hq/vendra-sdk/modules/catalog/infrastructure/persistence"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/infrastructure/persistence"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/presentation/controllers"
	"github.com/vendra-hq/vendra-sdk/modules/ordering/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "ordering"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewOrderItemService(
			persistence.NewOrderItemRepository(),
			persistence.NewOrderRepository(),
			catalogpersistence.NewProductRepository(),
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewOrderItemsController(app),
	)
	return nil
}

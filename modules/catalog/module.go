package catalog

import (
	"github.com/vendra-hq/vendra-sdk/modules/catalog/infrastructure/persistence"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/presentation/controllers"
	"github.com/vendra-hq/vendra-sdk/modules/catalog/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) Register(app application.Application) error {
	categoryRepo := persistence.NewCategoryRepository()
	menuRepo := persistence.NewMenuRepository()
	productRepo := persistence.NewProductRepository()
	menuCategoryRepo := persistence.NewMenuCategoryRepository()
	menuItemRepo := persistence.NewMenuItemRepository()

	app.RegisterServices(
		services.NewCategoryTreeService(categoryRepo),
		services.NewMenuCategoryService(menuCategoryRepo, menuRepo, categoryRepo, app.EventPublisher()),
		services.NewMenuItemService(menuItemRepo, menuRepo, productRepo, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewCategoriesController(app),
		controllers.NewMenuCategoriesController(app),
		controllers.NewMenuItemsController(app),
	)
	return nil
}

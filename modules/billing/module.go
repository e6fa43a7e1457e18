package billing

import (
	"github.com/vendra-hq/vendra-sdk/modules/billing/infrastructure/persistence"
	"github.com/vendra-hq/vendra-sdk/modules/billing/presentation/controllers"
	"github.com/vendra-hq/vendra-sdk/modules/billing/services"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "billing"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewPlanApplicationService(
			persistence.NewPlanApplicationRepository(),
			persistence.NewPlanRepository(),
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewPlanApplicationsController(app),
	)
	return nil
}

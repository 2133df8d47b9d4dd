package catalog

import (
	"github.com/partlane/partlane/modules/catalog/handlers"
	"github.com/partlane/partlane/modules/catalog/infrastructure/ingest"
	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence"
	"github.com/partlane/partlane/modules/catalog/presentation/controllers"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/application"
	"github.com/partlane/partlane/pkg/configuration"
)

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "catalog"
}

func (m *Module) Register(app application.Application) error {
	partRepo := persistence.NewPartRepository()
	bomItemRepo := persistence.NewBomItemRepository()

	bomService := services.NewBomService(partRepo, bomItemRepo, app.EventPublisher())
	app.RegisterServices(
		services.NewPartService(partRepo, app.EventPublisher()),
		bomService,
		services.NewBomImportService(partRepo, bomService, ingest.New()),
		services.NewBomExportService(partRepo, bomItemRepo),
	)

	app.RegisterControllers(
		controllers.NewPartsController(app),
		controllers.NewBomImportController(app),
	)

	handlers.RegisterBomEventHandler(app, configuration.Use().Logger())
	return nil
}

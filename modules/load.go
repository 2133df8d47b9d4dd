package modules

import (
	"github.com/partlane/partlane/modules/catalog"
	"github.com/partlane/partlane/pkg/application"
)

var BuiltInModules = []application.Module{
	catalog.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}

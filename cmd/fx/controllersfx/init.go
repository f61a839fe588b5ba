package controllersfx

import (
	"go.uber.org/fx"

	"tabiplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewWizardController),
	fx.Provide(controllers.NewPlansController),
	fx.Provide(controllers.NewDirectionsController))

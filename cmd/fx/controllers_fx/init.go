package controllers_fx

import (
	"go.uber.org/fx"

	"nomadai/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewTravelController),
	fx.Provide(controllers.NewPOIsController),
	fx.Provide(controllers.NewTagsController))

package engine_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nomadai/internal/engine"
	"nomadai/internal/providers"
	"nomadai/internal/repositories"
	"nomadai/internal/services"
	"nomadai/pkg/config"
)

var Module = fx.Provide(
	providePlanner,
	provideTravelService)

func providePlanner(adapter *providers.Adapter, narrator engine.Narrator, logger *zap.Logger) *engine.Planner {
	cfg := engine.Config{
		Allocator: engine.AllocatorConfig{
			FlightShare:       config.AppConfig.FlightShare,
			LodgingShare:      config.AppConfig.LodgingShare,
			ActivityShare:     config.AppConfig.ActivityShare,
			MealShare:         config.AppConfig.MealShare,
			InterestWeight:    config.AppConfig.InterestWeight,
			CategoryCeiling:   config.AppConfig.CategoryCeiling,
			FlightFloorMinor:  config.AppConfig.FlightFloorMinor,
			LodgingFloorMinor: config.AppConfig.LodgingFloorMinor,
		},
		Selector: engine.SelectorConfig{
			TopK: config.AppConfig.SelectorTopK,
		},
		Scheduler: engine.SchedulerConfig{
			TravelSpeedKmh: config.AppConfig.TravelSpeedKmh,
		},
		ProviderTimeout:  config.AppConfig.ProviderTimeout,
		NarrationTimeout: config.AppConfig.NarrationTimeout,
	}

	return engine.NewPlanner(adapter, narrator, cfg, logger)
}

func provideTravelService(adapter *providers.Adapter, cityRepo repositories.CityRepository, logger *zap.Logger) services.TravelServiceInterface {
	return services.NewTravelService(adapter, cityRepo, logger)
}

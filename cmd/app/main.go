package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nomadai/cmd/fx/cache_fx"
	"nomadai/cmd/fx/catalog_fx"
	"nomadai/cmd/fx/controllers_fx"
	"nomadai/cmd/fx/db_fx"
	"nomadai/cmd/fx/engine_fx"
	"nomadai/cmd/fx/narrator_fx"
	"nomadai/cmd/fx/providers_fx"
	"nomadai/internal/api/controllers"
	"nomadai/pkg/config"
	"nomadai/pkg/middleware"
	"nomadai/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	utils.InitializeLogger()

	app := fx.New(
		fx.Provide(utils.GetLogger),

		db_fx.Module,
		cache_fx.Module,
		catalog_fx.Module,
		providers_fx.Module,
		narrator_fx.Module,
		engine_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := config.AppConfig.AppPort
				if port == "" {
					port = "8080"
				}
				logger.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	travelController *controllers.TravelController,
	poisController *controllers.POIsController,
	tagsController *controllers.TagsController) *gin.Engine {

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, travelController, poisController, tagsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	travelController *controllers.TravelController,
	poisController *controllers.POIsController,
	tagsController *controllers.TagsController) {

	r.POST("/itinerary", itineraryController.PlanItinerary)

	r.GET("/flights", travelController.SearchFlights)
	r.GET("/hotels", travelController.SearchHotels)
	r.GET("/points-of-interest", travelController.SearchPois)
	r.GET("/popular-cities", travelController.GetPopularCities)
	r.GET("/interests", travelController.ListInterests)

	citiesGroup := r.Group("/cities")
	citiesGroup.GET("", travelController.SearchCities)
	citiesGroup.POST("", middleware.JWTAuthMiddleware(), travelController.CreateCity)

	tagsGroup := r.Group("/tags")
	tagsGroup.GET("", tagsController.ListTags)
	tagsGroup.POST("", middleware.JWTAuthMiddleware(), tagsController.CreateTag)

	poisGroup := r.Group("/pois")
	poisGroup.GET("/:id", poisController.GetPoiById)
	poisGroup.GET("/city/:city", poisController.ListPoisByCity)

	adminGroup := poisGroup.Group("")
	adminGroup.Use(middleware.JWTAuthMiddleware())
	adminGroup.POST("", poisController.CreatePoi)
	adminGroup.PUT("/:id", poisController.UpdatePoi)
	adminGroup.DELETE("/:id", poisController.DeletePoi)
}

package catalog_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nomadai/internal/repositories"
	"nomadai/internal/services"
	"nomadai/pkg/config"
	"nomadai/pkg/utils"
)

var Module = fx.Provide(
	providePoiRepo,
	provideEmbeddingRepo,
	provideCityRepo,
	provideTagRepo,
	provideEmbedder,
	providePoiService,
	provideTagService)

func providePoiRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.PoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func provideCityRepo(db *gorm.DB) repositories.CityRepository {
	return repositories.NewCityRepository(db)
}

func provideTagRepo(db *gorm.DB) repositories.TagRepository {
	return repositories.NewTagRepository(db)
}

// provideEmbedder uses OpenAI when a key is configured, otherwise the
// deterministic local embedder.
func provideEmbedder(logger *zap.Logger) utils.EmbeddingClientInterface {
	if config.AppConfig.OpenAIAPIKey != "" {
		return utils.NewOpenAIEmbeddingClient(config.AppConfig.OpenAIAPIKey)
	}
	logger.Info("no OpenAI key configured, using local embedder")
	return utils.NewLocalEmbeddingClient()
}

func provideTagService(tagRepo repositories.TagRepository, logger *zap.Logger) services.TagServiceInterface {
	return services.NewTagService(tagRepo, logger)
}

func providePoiService(
	poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
	logger *zap.Logger,
) services.POIServiceInterface {
	return services.NewPOIService(poiRepo, embeddingRepo, embedder, logger)
}

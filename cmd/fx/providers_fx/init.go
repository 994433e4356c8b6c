package providers_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nomadai/internal/providers"
	"nomadai/internal/repositories"
	"nomadai/pkg/config"
	"nomadai/pkg/utils"
)

var Module = fx.Provide(
	provideAmadeusClient,
	provideAdapter)

func provideAmadeusClient(logger *zap.Logger) *providers.AmadeusClient {
	return providers.NewAmadeusClient(providers.AmadeusConfig{
		ClientID:     config.AppConfig.AmadeusClientID,
		ClientSecret: config.AppConfig.AmadeusClientSecret,
		Env:          config.AppConfig.AmadeusEnv,
		Timeout:      config.AppConfig.ProviderTimeout,
	}, logger)
}

func provideAdapter(
	amadeus *providers.AmadeusClient,
	poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
	cache providers.Cache,
	logger *zap.Logger,
) *providers.Adapter {
	registered := []providers.Provider{
		providers.NewFlightProvider(amadeus),
		providers.NewLodgingProvider(amadeus),
		providers.NewActivityCatalogProvider(poiRepo, embeddingRepo, embedder, logger),
		providers.NewMealCatalogProvider(poiRepo, embeddingRepo, embedder, logger),
	}

	return providers.NewAdapter(registered, cache, providers.AdapterConfig{
		MaxAttempts: config.AppConfig.ProviderAttempts,
		SearchTTL:   config.AppConfig.SearchCacheTTL,
		CatalogTTL:  config.AppConfig.PoiCacheTTL,
	}, logger)
}

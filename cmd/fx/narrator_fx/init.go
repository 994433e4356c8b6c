package narrator_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"nomadai/internal/engine"
	"nomadai/internal/services"
	"nomadai/pkg/config"
	"nomadai/pkg/utils"
)

var Module = fx.Provide(provideNarrator)

// provideNarrator picks the configured generative backend. A nil narrator
// is valid; the planner then always uses the templated fallback.
func provideNarrator(logger *zap.Logger) engine.Narrator {
	var textClient utils.TextGenerationClientInterface

	switch config.AppConfig.NarratorProvider {
	case "gemini":
		client, err := utils.NewGeminiTextClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("gemini narrator unavailable, using fallback narratives", zap.Error(err))
			return nil
		}
		textClient = client
	case "openai":
		textClient = utils.NewOpenAITextClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIModel)
	default:
		logger.Info("no narrator configured, using fallback narratives")
		return nil
	}

	return services.NewNarrationService(textClient, logger)
}

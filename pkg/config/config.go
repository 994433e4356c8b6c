package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// External providers.
	AmadeusClientID     string `mapstructure:"AMADEUS_CLIENT_ID"`
	AmadeusClientSecret string `mapstructure:"AMADEUS_CLIENT_SECRET"`
	AmadeusEnv          string `mapstructure:"AMADEUS_ENV"`

	// Narration / embedding backends.
	NarratorProvider string `mapstructure:"NARRATOR_PROVIDER"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel      string `mapstructure:"OPENAI_MODEL"`

	// Planning tunables. These are heuristics, not contracts; the defaults
	// below are the documented baseline.
	FlightShare     float64 `mapstructure:"BUDGET_FLIGHT_SHARE"`
	LodgingShare    float64 `mapstructure:"BUDGET_LODGING_SHARE"`
	ActivityShare   float64 `mapstructure:"BUDGET_ACTIVITY_SHARE"`
	MealShare       float64 `mapstructure:"BUDGET_MEAL_SHARE"`
	InterestWeight  float64 `mapstructure:"BUDGET_INTEREST_WEIGHT"`
	CategoryCeiling float64 `mapstructure:"BUDGET_CATEGORY_CEILING"`

	FlightFloorMinor  int64 `mapstructure:"BUDGET_FLIGHT_FLOOR_MINOR"`
	LodgingFloorMinor int64 `mapstructure:"BUDGET_LODGING_FLOOR_MINOR"`

	TravelSpeedKmh   float64 `mapstructure:"TRAVEL_SPEED_KMH"`
	SelectorTopK     int     `mapstructure:"SELECTOR_TOP_K"`
	ProviderAttempts int     `mapstructure:"PROVIDER_MAX_ATTEMPTS"`

	ProviderTimeout  time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	NarrationTimeout time.Duration `mapstructure:"NARRATION_TIMEOUT"`
	SearchCacheTTL   time.Duration `mapstructure:"SEARCH_CACHE_TTL"`
	PoiCacheTTL      time.Duration `mapstructure:"POI_CACHE_TTL"`
}

var AppConfig Config

func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("POSTGRES_URL", "postgres://localhost:5432/nomadai")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("AMADEUS_ENV", "test")
	viper.SetDefault("NARRATOR_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	viper.SetDefault("BUDGET_FLIGHT_SHARE", 0.35)
	viper.SetDefault("BUDGET_LODGING_SHARE", 0.30)
	viper.SetDefault("BUDGET_ACTIVITY_SHARE", 0.20)
	viper.SetDefault("BUDGET_MEAL_SHARE", 0.15)
	viper.SetDefault("BUDGET_INTEREST_WEIGHT", 0.03)
	viper.SetDefault("BUDGET_CATEGORY_CEILING", 0.60)
	viper.SetDefault("BUDGET_FLIGHT_FLOOR_MINOR", 5000)
	viper.SetDefault("BUDGET_LODGING_FLOOR_MINOR", 3000)

	viper.SetDefault("TRAVEL_SPEED_KMH", 25.0)
	viper.SetDefault("SELECTOR_TOP_K", 0)
	viper.SetDefault("PROVIDER_MAX_ATTEMPTS", 3)
	viper.SetDefault("PROVIDER_TIMEOUT", 30*time.Second)
	viper.SetDefault("NARRATION_TIMEOUT", 30*time.Second)
	viper.SetDefault("SEARCH_CACHE_TTL", time.Hour)
	viper.SetDefault("POI_CACHE_TTL", 24*time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package infra

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nomadai/internal/models/db_models"
	"nomadai/pkg/config"
	"nomadai/pkg/utils"
)

func InitPostgresql() *gorm.DB {
	dsn := config.AppConfig.PostgresURL

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.GetLogger().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&db_models.POI{},
		&db_models.Tag{},
		&db_models.City{},
	); err != nil {
		utils.GetLogger().Fatal("failed to run migrations", zap.Error(err))
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		utils.GetLogger().Error("failed to get database instance", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		utils.GetLogger().Error("failed to close database connection", zap.Error(err))
	}
}

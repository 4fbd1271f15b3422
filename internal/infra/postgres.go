package infra

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kahgin/fika-core/pkg/config"
)

func InitPostgresql(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		return nil, err
	}
	return db, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database handle unavailable", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("database close failed", zap.Error(err))
		return
	}
	logger.Info("database connection closed")
}

package db

import (
	"fmt"

	"github.com/nexushub/agency-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection described by cfg.
// TranslateError is enabled so constraint violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var sslMode string
	if cfg.DBSSLDisable {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return database, nil
}

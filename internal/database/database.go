package database

import (
	"fmt"
	"time"

	"github.com/Floumy/floumy-sub002/internal/config"
	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"
	"github.com/Floumy/floumy-sub002/internal/observability/tracing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	if cfg.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", cfg.SSLRootCert)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	// Register observability GORM callbacks
	metrics.RegisterGORMCallbacks(db)
	tracing.RegisterGORMTracing(db)

	// Start DB connection stats collector
	sqlDB, err := db.DB()
	if err == nil {
		metrics.StartDBStatsCollector(sqlDB, 15*time.Second)
	}

	return db, nil
}

// Migrate applies the schema for every persisted model. Tests reuse it
// against in-memory SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Org{},
		&models.Project{},
		&models.User{},
		&models.Sprint{},
		&models.Initiative{},
		&models.WorkItem{},
		&models.Objective{},
		&models.KeyResult{},
		&models.Comment{},
		&models.FileAttachment{},
		&models.FeatureRequest{},
	)
}

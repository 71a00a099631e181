// Package database provides the GORM/Postgres connection and the
// transactional writers the Persistence Layer (§4.5) needs.
package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jimmysun0815/snow-api/internal/log"
)

// Connect opens a GORM/Postgres connection and sizes the pool to at least
// the fan-out width (§4.5: "connection pool sized to at least the fan-out
// width"). poolSize should be max_workers + overflow (default 20 + 10).
func Connect(dsn string, poolSize int) (*gorm.DB, error) {
	dbLogger := gormlogger.New(
		zap.NewStdLog(log.GetZapLogger()),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	log.Info("connecting to database...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if poolSize <= 0 {
		poolSize = 30
	}
	sqlDB.SetMaxOpenConns(poolSize)
	sqlDB.SetMaxIdleConns(poolSize / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection successful")
	return db, nil
}

// Migrate creates every table this service owns and the time-series
// indexes §6 requires ((resort_id, timestamp desc)). AutoMigrate handles
// column shape; the composite indexes are added explicitly because GORM's
// tag-driven indexes don't express "desc" directly across all dialects.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&ResortModel{},
		&ConditionModel{},
		&WeatherModel{},
		&WebcamModel{},
		&TrailModel{},
		&QualityReportModel{},
	); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_conditions_resort_ts ON resort_conditions (resort_id, timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_weather_resort_ts ON resort_weather (resort_id, timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_webcams_resort_ts ON resort_webcams (resort_id, last_updated DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_trails_resort ON resort_trails (resort_id)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	return nil
}

// CheckHealth reports whether the database is reachable, for /api/status.
func CheckHealth(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

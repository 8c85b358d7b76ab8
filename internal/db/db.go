package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platefleet/scheduling/internal/config"
	"github.com/platefleet/scheduling/internal/models"
)

// NewDB connects to postgres when DATABASE_URL is set and falls back to a
// local SQLite file for development.
func NewDB(cfg *config.Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.DBUrl != "" {
		db, err = gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt: true,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.StaffMember{},
		&models.AvailabilityWindow{},
		&models.Shift{},
		&models.Conflict{},
		&models.AuditLog{},
	)
}

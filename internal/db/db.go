package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/model"
)

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DB)
	if err != nil {
		return nil, err
	}

	dbLog := log.With().Str("component", "gorm").Logger()
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(&dbLog, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Driver, err)
	}

	if err := configurePool(database, cfg.DB); err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(context.Background(), database); err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.DB.Driver).Msg("database schema migrated")
	}
	return database, nil
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func configurePool(database *gorm.DB, cfg config.DBConfig) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}

	// SQLite allows a single writer; one connection serializes transactions
	// and keeps in-memory databases shared.
	if cfg.Driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		if err := database.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return nil
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			return fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
		}
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	return nil
}

// Migrate creates or updates the schema. PostgreSQL additionally gets the
// CHECK constraints and partial indexes gorm cannot express.
func Migrate(ctx context.Context, database *gorm.DB) error {
	if err := database.WithContext(ctx).AutoMigrate(
		&model.Profile{},
		&model.Contract{},
		&model.Job{},
		&model.LedgerEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if database.Dialector.Name() != "postgres" {
		return nil
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return runMigrations(ctx, sqlDB)
}

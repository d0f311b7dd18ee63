package db

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/model"
)

func TestNewSQLiteMigratesSchema(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:", AutoMigrate: true}}

	database, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	for _, table := range []interface{}{&model.Profile{}, &model.Contract{}, &model.Job{}, &model.LedgerEntry{}} {
		assert.True(t, database.Migrator().HasTable(table))
	}

	sqlDB, err := database.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: "mysql", DSN: "x"}}

	_, err := New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

// Package testutil builds in-memory SQLite stores and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/db"
	"github.com/nurpe/contracts-service/internal/model"
)

func Config() *config.Config {
	return &config.Config{
		Environment: "test",
		DB:          config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:", AutoMigrate: true},
		Auth:        config.AuthConfig{Mode: config.AuthModeHeader},
		Payments:    config.PaymentsConfig{DepositCapRatio: decimal.RequireFromString("0.25")},
		Reports:     config.ReportsConfig{BestClientsLimit: 2},
	}
}

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.New(Config(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

func Amount(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func CreateProfile(t *testing.T, database *gorm.DB, typ model.ProfileType, profession, balance string) *model.Profile {
	t.Helper()
	profile := &model.Profile{
		FirstName:  "First" + profession,
		LastName:   "Last",
		Profession: profession,
		Balance:    Amount(balance),
		Type:       typ,
	}
	require.NoError(t, database.Create(profile).Error)
	return profile
}

func CreateContract(t *testing.T, database *gorm.DB, client, contractor *model.Profile, status model.ContractStatus) *model.Contract {
	t.Helper()
	contract := &model.Contract{
		Terms:        "bla bla bla",
		Status:       status,
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	}
	require.NoError(t, database.Create(contract).Error)
	return contract
}

func CreateJob(t *testing.T, database *gorm.DB, contract *model.Contract, price string) *model.Job {
	t.Helper()
	job := &model.Job{
		Description: "work",
		Price:       Amount(price),
		ContractID:  contract.ID,
	}
	require.NoError(t, database.Create(job).Error)
	return job
}

func CreatePaidJob(t *testing.T, database *gorm.DB, contract *model.Contract, price string, paidAt time.Time) *model.Job {
	t.Helper()
	paid := true
	at := paidAt.UTC()
	job := &model.Job{
		Description: "work",
		Price:       Amount(price),
		Paid:        &paid,
		PaymentDate: &at,
		ContractID:  contract.ID,
	}
	require.NoError(t, database.Create(job).Error)
	return job
}

func ReloadProfile(t *testing.T, database *gorm.DB, id uint) model.Profile {
	t.Helper()
	var profile model.Profile
	require.NoError(t, database.First(&profile, id).Error)
	return profile
}

func ReloadJob(t *testing.T, database *gorm.DB, id uint) model.Job {
	t.Helper()
	var job model.Job
	require.NoError(t, database.First(&job, id).Error)
	return job
}

// RequireAmount compares decimals by value so 10 and 10.00 are equal.
func RequireAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, Amount(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

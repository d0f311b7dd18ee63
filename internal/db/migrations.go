package db

import (
	"context"
	"database/sql"
	"fmt"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_profiles_balance_non_negative') THEN
			ALTER TABLE profiles ADD CONSTRAINT chk_profiles_balance_non_negative CHECK (balance >= 0);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_profiles_type') THEN
			ALTER TABLE profiles ADD CONSTRAINT chk_profiles_type CHECK (type IN ('client', 'contractor'));
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_contracts_status') THEN
			ALTER TABLE contracts ADD CONSTRAINT chk_contracts_status CHECK (status IN ('new', 'in_progress', 'terminated'));
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_jobs_price_positive') THEN
			ALTER TABLE jobs ADD CONSTRAINT chk_jobs_price_positive CHECK (price > 0);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_jobs_payment_date') THEN
			ALTER TABLE jobs ADD CONSTRAINT chk_jobs_payment_date CHECK (paid IS NOT TRUE OR payment_date IS NOT NULL);
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_unpaid ON jobs (contract_id) WHERE paid IS NOT TRUE;`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_payment_date ON jobs (payment_date) WHERE paid IS TRUE;`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_profile_created ON ledger_entries (profile_id, created_at DESC);`,
}

func runMigrations(ctx context.Context, conn *sql.DB) error {
	for i, stmt := range migrationStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

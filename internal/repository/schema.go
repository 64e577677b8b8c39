package repository

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                            TEXT PRIMARY KEY,
		name                          TEXT NOT NULL,
		occupation                    TEXT NOT NULL DEFAULT '',
		monthly_income                DOUBLE PRECISION NOT NULL DEFAULT 0,
		salary_credit_variance_days   INTEGER NOT NULL DEFAULT 0,
		liquidity_coverage_ratio      DOUBLE PRECISION,
		failed_auto_debit_count       INTEGER NOT NULL DEFAULT 0,
		remittance_volatility_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		micro_credit_tx_count         INTEGER NOT NULL DEFAULT 0,
		credit_card_utilization       DOUBLE PRECISION,
		atm_withdrawal_velocity       DOUBLE PRECISION,
		inquiry_count_7_days          INTEGER NOT NULL DEFAULT 0,
		discretionary_spend_reduction DOUBLE PRECISION NOT NULL DEFAULT 0,
		utility_payment_latency_days  INTEGER NOT NULL DEFAULT 0,
		high_risk_merchant_tx_count   INTEGER NOT NULL DEFAULT 0,
		insurance_premium_status      TEXT NOT NULL DEFAULT 'Active',
		sip_consistency_score         DOUBLE PRECISION,
		asset_volatility_flag         BOOLEAN NOT NULL DEFAULT FALSE,
		portfolio_liquidation_flag    BOOLEAN NOT NULL DEFAULT FALSE,
		pledge_activity_flag          BOOLEAN NOT NULL DEFAULT FALSE,
		employer_contribution         DOUBLE PRECISION NOT NULL DEFAULT 0,
		employer_contribution_gap     BOOLEAN NOT NULL DEFAULT FALSE,
		tax_compliance_status         TEXT NOT NULL DEFAULT 'Compliant',
		job_search_activity_index     DOUBLE PRECISION NOT NULL DEFAULT 0,
		postal_code                   TEXT NOT NULL DEFAULT '',
		disaster_zone_flag            BOOLEAN NOT NULL DEFAULT FALSE,
		infrastructure_failure_flag   BOOLEAN NOT NULL DEFAULT FALSE,
		risk_score                    INTEGER NOT NULL DEFAULT 0,
		status                        TEXT NOT NULL DEFAULT 'Clean',
		distress_category             TEXT,
		distress_trigger              TEXT NOT NULL DEFAULT '',
		created_at                    TIMESTAMP NOT NULL,
		updated_at                    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type      TEXT NOT NULL,
		balance   DOUBLE PRECISION NOT NULL DEFAULT 0,
		bank_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		account_id    TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		amount        DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		currency      TEXT NOT NULL DEFAULT 'INR',
		occurred_at   TIMESTAMP NOT NULL,
		category      TEXT NOT NULL,
		merchant_name TEXT NOT NULL DEFAULT '',
		payment_mode  TEXT NOT NULL DEFAULT '',
		direction     TEXT NOT NULL CHECK (direction IN ('Credit', 'Debit'))
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		loan_type          TEXT NOT NULL,
		principal_amount   DOUBLE PRECISION NOT NULL,
		outstanding_amount DOUBLE PRECISION NOT NULL,
		monthly_emi        DOUBLE PRECISION NOT NULL,
		interest_rate      DOUBLE PRECISION NOT NULL,
		tenure_months      INTEGER NOT NULL,
		remaining_months   INTEGER NOT NULL,
		start_date         TIMESTAMP NOT NULL,
		CHECK (remaining_months <= tenure_months)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_user_id ON loans(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)`,
}

// Migrate creates the tables if they do not exist yet
func (r *Repository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

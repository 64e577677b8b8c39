package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/google/uuid"
)

// Repository provides database operations
type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

var userColumns = []string{
	"id", "name", "occupation", "monthly_income",
	"salary_credit_variance_days", "liquidity_coverage_ratio", "failed_auto_debit_count", "remittance_volatility_percent",
	"micro_credit_tx_count", "credit_card_utilization", "atm_withdrawal_velocity", "inquiry_count_7_days",
	"discretionary_spend_reduction", "utility_payment_latency_days", "high_risk_merchant_tx_count", "insurance_premium_status",
	"sip_consistency_score", "asset_volatility_flag", "portfolio_liquidation_flag", "pledge_activity_flag",
	"employer_contribution", "employer_contribution_gap", "tax_compliance_status", "job_search_activity_index",
	"postal_code", "disaster_zone_flag", "infrastructure_failure_flag",
	"risk_score", "status", "distress_category", "distress_trigger",
	"created_at", "updated_at",
}

// userValues returns the column values of s in userColumns order
func userValues(s *models.Snapshot) []any {
	return []any{
		s.ID, s.Name, s.Occupation, s.MonthlyIncome,
		s.SalaryCreditVarianceDays, nullFloat(s.LiquidityCoverageRatio), s.FailedAutoDebitCount, s.RemittanceVolatilityPercent,
		s.MicroCreditTxCount, nullFloat(s.CreditCardUtilization), nullFloat(s.ATMWithdrawalVelocity), s.InquiryCount7Days,
		s.DiscretionarySpendReduction, s.UtilityPaymentLatencyDays, s.HighRiskMerchantTxCount, string(orDefault(s.InsurancePremiumStatus, models.InsuranceActive)),
		nullFloat(s.SIPConsistencyScore), s.AssetVolatilityFlag, s.PortfolioLiquidationFlag, s.PledgeActivityFlag,
		s.EmployerContribution, s.EmployerContributionGap, string(orDefault(s.TaxComplianceStatus, models.TaxCompliant)), s.JobSearchActivityIndex,
		s.PostalCode, s.DisasterZoneFlag, s.InfrastructureFailureFlag,
		s.RiskScore, string(orDefault(s.Status, models.StatusClean)), nullString(s.DistressCategory), string(s.DistressTrigger),
		s.CreatedAt, s.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.Snapshot, error) {
	var (
		s                                  models.Snapshot
		lcr, utilization, atmVelocity, sip sql.NullFloat64
		insurance, tax, status, trigger    string
		category                           sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Occupation, &s.MonthlyIncome,
		&s.SalaryCreditVarianceDays, &lcr, &s.FailedAutoDebitCount, &s.RemittanceVolatilityPercent,
		&s.MicroCreditTxCount, &utilization, &atmVelocity, &s.InquiryCount7Days,
		&s.DiscretionarySpendReduction, &s.UtilityPaymentLatencyDays, &s.HighRiskMerchantTxCount, &insurance,
		&sip, &s.AssetVolatilityFlag, &s.PortfolioLiquidationFlag, &s.PledgeActivityFlag,
		&s.EmployerContribution, &s.EmployerContributionGap, &tax, &s.JobSearchActivityIndex,
		&s.PostalCode, &s.DisasterZoneFlag, &s.InfrastructureFailureFlag,
		&s.RiskScore, &status, &category, &trigger,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.LiquidityCoverageRatio = floatPtr(lcr)
	s.CreditCardUtilization = floatPtr(utilization)
	s.ATMWithdrawalVelocity = floatPtr(atmVelocity)
	s.SIPConsistencyScore = floatPtr(sip)
	s.InsurancePremiumStatus = models.InsuranceStatus(insurance)
	s.TaxComplianceStatus = models.TaxStatus(tax)
	s.Status = models.Status(status)
	s.DistressTrigger = models.Trigger(trigger)
	if category.Valid {
		s.DistressCategory = &category.String
	}
	return &s, nil
}

// Get retrieves an individual's snapshot by id
func (r *Repository) Get(ctx context.Context, id string) (*models.Snapshot, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, strings.Join(userColumns, ", "))
	s, err := scanUser(r.db.QueryRowContext(ctx, rebind(r.driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrUnknownIndividual)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s, nil
}

// List retrieves every snapshot ordered by id
func (r *Repository) List(ctx context.Context) ([]*models.Snapshot, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, strings.Join(userColumns, ", "))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.Snapshot
	for rows.Next() {
		s, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new snapshot
func (r *Repository) CreateUser(ctx context.Context, s *models.Snapshot) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	query := fmt.Sprintf(`INSERT INTO users (%s) VALUES (%s)`, strings.Join(userColumns, ", "), placeholders(len(userColumns)))
	if _, err := r.db.ExecContext(ctx, rebind(r.driver, query), userValues(s)...); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update overwrites the stored snapshot of id
func (r *Repository) Update(ctx context.Context, id string, s *models.Snapshot) error {
	_, err := r.update(ctx, r.db, id, s)
	return err
}

// Modify reads the snapshot of id, passes it to fn and stores the result in one
// transaction, so no concurrent write can land between the read and the write.
// An error from fn aborts the transaction and is returned as is.
func (r *Repository) Modify(ctx context.Context, id string, fn func(*models.Snapshot) (*models.Snapshot, error)) (*models.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, strings.Join(userColumns, ", "))
	if r.driver == DriverPostgres {
		query += ` FOR UPDATE`
	}
	current, err := scanUser(tx.QueryRowContext(ctx, rebind(r.driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrUnknownIndividual)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("modify of user %s returned no snapshot", id)
	}
	if updated.UpdatedAt, err = r.update(ctx, tx, id, updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// update writes every mutable column of s and returns the new updated_at value
func (r *Repository) update(ctx context.Context, db execer, id string, s *models.Snapshot) (time.Time, error) {
	now := time.Now().UTC()
	values := userValues(s)

	// id and created_at are immutable
	sets := make([]string, 0, len(userColumns))
	args := make([]any, 0, len(userColumns))
	for i, col := range userColumns {
		switch col {
		case "id", "created_at":
			continue
		case "updated_at":
			args = append(args, now)
		default:
			args = append(args, values[i])
		}
		sets = append(sets, col+" = ?")
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := db.ExecContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return time.Time{}, fmt.Errorf("user %s: %w", id, models.ErrUnknownIndividual)
	}
	return now, nil
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	query := `
		INSERT INTO accounts (id, user_id, type, balance, bank_name)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, rebind(r.driver, query),
		account.ID, account.UserID, account.Type, account.Balance, account.BankName)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ListAccounts retrieves the accounts of a user
func (r *Repository) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	query := `SELECT id, user_id, type, balance, bank_name FROM accounts WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Balance, &a.BankName); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// CreateTransaction appends a transaction
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: transaction amount must be positive", models.ErrInvalidInput)
	}
	if tx.Direction != models.DirectionCredit && tx.Direction != models.DirectionDebit {
		return fmt.Errorf("%w: unknown transaction direction %q", models.ErrInvalidInput, tx.Direction)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Currency == "" {
		tx.Currency = "INR"
	}
	query := `
		INSERT INTO transactions (id, user_id, account_id, amount, currency, occurred_at, category, merchant_name, payment_mode, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, rebind(r.driver, query),
		tx.ID, tx.UserID, tx.AccountID, tx.Amount, tx.Currency, tx.Timestamp.UTC(),
		tx.Category, tx.MerchantName, tx.PaymentMode, string(tx.Direction))
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves a user's transactions, oldest first
func (r *Repository) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, amount, currency, occurred_at, category, merchant_name, payment_mode, direction
		FROM transactions
		WHERE user_id = ?
		ORDER BY occurred_at, id`
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var (
			tx        models.Transaction
			direction string
		)
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.Amount, &tx.Currency, &tx.Timestamp,
			&tx.Category, &tx.MerchantName, &tx.PaymentMode, &direction)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Direction = models.Direction(direction)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// CreateLoan appends a loan
func (r *Repository) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if err := loan.Validate(); err != nil {
		return err
	}
	if loan.ID == "" {
		loan.ID = uuid.NewString()
	}
	query := `
		INSERT INTO loans (id, user_id, loan_type, principal_amount, outstanding_amount, monthly_emi,
			interest_rate, tenure_months, remaining_months, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, rebind(r.driver, query),
		loan.ID, loan.UserID, string(loan.Type), loan.PrincipalAmount, loan.OutstandingAmount, loan.MonthlyEMI,
		loan.InterestRate, loan.TenureMonths, loan.RemainingTenureMonths, loan.StartDate.UTC())
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// ListLoans retrieves a user's loans, oldest first
func (r *Repository) ListLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	query := `
		SELECT id, user_id, loan_type, principal_amount, outstanding_amount, monthly_emi,
			interest_rate, tenure_months, remaining_months, start_date
		FROM loans
		WHERE user_id = ?
		ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var (
			l        models.Loan
			loanType string
		)
		err := rows.Scan(&l.ID, &l.UserID, &loanType, &l.PrincipalAmount, &l.OutstandingAmount, &l.MonthlyEMI,
			&l.InterestRate, &l.TenureMonths, &l.RemainingTenureMonths, &l.StartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		l.Type = models.LoanType(loanType)
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// Reset deletes every stored record
func (r *Repository) Reset(ctx context.Context) error {
	for _, table := range []string{"transactions", "loans", "accounts", "users"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}

package models

import "time"

// Default values for optional indicator fields. A missing value is treated as healthy.
const (
	DefaultCreditCardUtilization  = 20.0
	DefaultLiquidityCoverageRatio = 2.0
	DefaultATMWithdrawalVelocity  = 1.0
	DefaultSIPConsistencyScore    = 1.0
)

// Snapshot is the full set of behavioral and financial indicators for one individual
type Snapshot struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Occupation    string  `json:"occupation"`
	MonthlyIncome float64 `json:"monthly_income"`

	// Liquidity group
	SalaryCreditVarianceDays    int      `json:"salary_credit_variance_days"`
	LiquidityCoverageRatio      *float64 `json:"liquidity_coverage_ratio,omitempty"`
	FailedAutoDebitCount        int      `json:"failed_auto_debit_count"`
	RemittanceVolatilityPercent float64  `json:"remittance_volatility_percent"`

	// Debt group
	MicroCreditTxCount    int      `json:"micro_credit_tx_count"`
	CreditCardUtilization *float64 `json:"credit_card_utilization,omitempty"`
	ATMWithdrawalVelocity *float64 `json:"atm_withdrawal_velocity,omitempty"`
	InquiryCount7Days     int      `json:"inquiry_count_7_days"`

	// Operational group
	DiscretionarySpendReduction float64         `json:"discretionary_spend_reduction"`
	UtilityPaymentLatencyDays   int             `json:"utility_payment_latency_days"`
	HighRiskMerchantTxCount     int             `json:"high_risk_merchant_tx_count"`
	InsurancePremiumStatus      InsuranceStatus `json:"insurance_premium_status"`

	// Asset group
	SIPConsistencyScore      *float64 `json:"sip_consistency_score,omitempty"`
	AssetVolatilityFlag      bool     `json:"asset_volatility_flag"`
	PortfolioLiquidationFlag bool     `json:"portfolio_liquidation_flag"`
	PledgeActivityFlag       bool     `json:"pledge_activity_flag"`

	// Employment group
	EmployerContribution    float64   `json:"employer_contribution"`
	EmployerContributionGap bool      `json:"employer_contribution_gap"`
	TaxComplianceStatus     TaxStatus `json:"tax_compliance_status"`
	JobSearchActivityIndex  float64   `json:"job_search_activity_index"`

	// Geo-environmental group
	PostalCode                string `json:"postal_code"`
	DisasterZoneFlag          bool   `json:"disaster_zone_flag"`
	InfrastructureFailureFlag bool   `json:"infrastructure_failure_flag"`

	RiskScore        int     `json:"risk_score"`
	Status           Status  `json:"status"`
	DistressCategory *string `json:"distress_category"`
	DistressTrigger  Trigger `json:"distress_trigger,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Utilization returns the credit card utilization percent, or the default when unset
func (s *Snapshot) Utilization() float64 {
	return valueOr(s.CreditCardUtilization, DefaultCreditCardUtilization)
}

// CoverageRatio returns the liquidity coverage ratio, or the default when unset
func (s *Snapshot) CoverageRatio() float64 {
	return valueOr(s.LiquidityCoverageRatio, DefaultLiquidityCoverageRatio)
}

// ATMVelocity returns the ATM withdrawal velocity ratio, or the default when unset
func (s *Snapshot) ATMVelocity() float64 {
	return valueOr(s.ATMWithdrawalVelocity, DefaultATMWithdrawalVelocity)
}

// SIPConsistency returns the SIP consistency score, or the default when unset
func (s *Snapshot) SIPConsistency() float64 {
	return valueOr(s.SIPConsistencyScore, DefaultSIPConsistencyScore)
}

// Category returns the distress category or an empty string
func (s *Snapshot) Category() string {
	if s.DistressCategory == nil {
		return ""
	}
	return *s.DistressCategory
}

// Clone returns a deep copy so callers can modify the result without touching the original
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.LiquidityCoverageRatio = clonePtr(s.LiquidityCoverageRatio)
	c.CreditCardUtilization = clonePtr(s.CreditCardUtilization)
	c.ATMWithdrawalVelocity = clonePtr(s.ATMWithdrawalVelocity)
	c.SIPConsistencyScore = clonePtr(s.SIPConsistencyScore)
	if s.DistressCategory != nil {
		category := *s.DistressCategory
		c.DistressCategory = &category
	}
	return &c
}

// Float returns a pointer to v, for filling optional indicator fields
func Float(v float64) *float64 {
	return &v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// UserSummary is the list view of an individual
type UserSummary struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Occupation           string  `json:"occupation"`
	Income               float64 `json:"income"`
	EmployerContribution float64 `json:"employer_contribution"`
	Score                int     `json:"score"`
	Status               Status  `json:"status"`
	Volatility           string  `json:"volatility"`
}

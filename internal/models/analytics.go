package models

// ExpenditureCategory is one bucket of the expenditure breakdown
type ExpenditureCategory struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// LoanDetail is the per-loan line of a financial summary
type LoanDetail struct {
	Type            LoanType `json:"type"`
	Principal       float64  `json:"principal"`
	Outstanding     float64  `json:"outstanding"`
	EMI             float64  `json:"emi"`
	InterestRate    float64  `json:"interest_rate"`
	RemainingMonths int      `json:"remaining_months"`
}

// FinancialSummary holds spend, loan burden and repayment capacity
type FinancialSummary struct {
	ExpenditureBreakdown []ExpenditureCategory `json:"expenditure_breakdown"`
	TotalSpend           float64               `json:"total_spend"`
	Loans                []LoanDetail          `json:"loans"`
	TotalEMI             float64               `json:"total_emi"`
	DisposableIncome     float64               `json:"disposable_income"`
	CanRepay             bool                  `json:"can_repay"`
}

// Reason is one entry of a score explanation
type Reason struct {
	Feature     string `json:"feature"`
	Impact      int    `json:"impact"`
	Description string `json:"desc"`
}

// Intervention is the remediation recommended for a distress trigger
type Intervention struct {
	Action   string `json:"action"`
	Message  string `json:"message"`
	Category string `json:"type,omitempty"`
}

// Profile is the detailed view of one individual
type Profile struct {
	Snapshot *Snapshot `json:"user"`
	FinancialSummary
	Explanation []Reason `json:"explanation"`
}

// DistressOutcome is returned after a distress report was applied
type DistressOutcome struct {
	User         *Snapshot    `json:"user"`
	Intervention Intervention `json:"intervention"`
}

package models

import (
	"fmt"
	"time"
)

// LoanType is the product a loan was issued under
type LoanType string

const (
	LoanPersonal   LoanType = "Personal"
	LoanHome       LoanType = "Home"
	LoanAuto       LoanType = "Auto"
	LoanEducation  LoanType = "Education"
	LoanCreditCard LoanType = "Credit Card"
	LoanBusiness   LoanType = "Business"
	LoanGold       LoanType = "Gold"
)

// Loan represents a loan held by an individual
type Loan struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	Type                  LoanType  `json:"type"`
	PrincipalAmount       float64   `json:"principal"`
	OutstandingAmount     float64   `json:"outstanding"`
	MonthlyEMI            float64   `json:"emi"`
	InterestRate          float64   `json:"interest_rate"` // annual, percent
	TenureMonths          int       `json:"tenure_months"`
	RemainingTenureMonths int       `json:"remaining_months"`
	StartDate             time.Time `json:"start_date"`
}

// Validate checks the loan's tenure and amounts
func (l *Loan) Validate() error {
	if l.TenureMonths < 0 || l.RemainingTenureMonths < 0 {
		return fmt.Errorf("%w: loan tenure must not be negative", ErrInvalidInput)
	}
	if l.RemainingTenureMonths > l.TenureMonths {
		return fmt.Errorf("%w: remaining tenure %d exceeds total tenure %d", ErrInvalidInput, l.RemainingTenureMonths, l.TenureMonths)
	}
	if l.MonthlyEMI < 0 || l.PrincipalAmount < 0 || l.OutstandingAmount < 0 {
		return fmt.Errorf("%w: loan amounts must not be negative", ErrInvalidInput)
	}
	return nil
}

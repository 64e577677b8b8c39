// Package engine scores financial distress from an individual's indicator snapshot and
// records. Every function here is pure: no I/O, no shared state.
package engine

import (
	"math"
	"sort"

	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// OthersCategory collects every category outside the top ones
	OthersCategory = "Others"
	topCategories  = 5
)

// AggregateExpenditure sums debit amounts per category, largest first. Only the top five
// categories are kept; the remainder is folded into a single "Others" bucket.
func AggregateExpenditure(txs []models.Transaction) []models.ExpenditureCategory {
	totals := debitTotals(txs)
	breakdown := make([]models.ExpenditureCategory, 0, topCategories+1)
	if len(totals) == 0 {
		return breakdown
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := totals[names[i]], totals[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		if i == topCategories {
			break
		}
		breakdown = append(breakdown, models.ExpenditureCategory{Name: name, Value: roundMoney(totals[name])})
	}

	if len(names) > topCategories {
		others := decimal.Zero
		for _, name := range names[topCategories:] {
			others = others.Add(totals[name])
		}
		breakdown = append(breakdown, models.ExpenditureCategory{Name: OthersCategory, Value: roundMoney(others)})
	}
	return breakdown
}

// TotalSpend is the sum of all debit amounts
func TotalSpend(txs []models.Transaction) float64 {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsDebit() {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return roundMoney(total)
}

// TotalEMI is the sum of monthly installments across all loans
func TotalEMI(loans []models.Loan) float64 {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(decimal.NewFromFloat(l.MonthlyEMI))
	}
	return roundMoney(total)
}

// DisposableIncome returns income minus spend and installments. The value is not floored,
// a shortfall is reported as a negative amount with canRepay=false.
func DisposableIncome(income, totalSpend, totalEMI float64) (amount float64, canRepay bool) {
	d := decimal.NewFromFloat(income).
		Sub(decimal.NewFromFloat(totalSpend)).
		Sub(decimal.NewFromFloat(totalEMI))
	return d.InexactFloat64(), !d.IsNegative()
}

// Summarize builds the full financial summary for one individual
func Summarize(income float64, txs []models.Transaction, loans []models.Loan) models.FinancialSummary {
	spend := TotalSpend(txs)
	emi := TotalEMI(loans)
	disposable, canRepay := DisposableIncome(income, spend, emi)

	details := make([]models.LoanDetail, 0, len(loans))
	for _, l := range loans {
		details = append(details, models.LoanDetail{
			Type:            l.Type,
			Principal:       roundMoney(decimal.NewFromFloat(l.PrincipalAmount)),
			Outstanding:     roundMoney(decimal.NewFromFloat(l.OutstandingAmount)),
			EMI:             roundMoney(decimal.NewFromFloat(l.MonthlyEMI)),
			InterestRate:    l.InterestRate,
			RemainingMonths: l.RemainingTenureMonths,
		})
	}

	return models.FinancialSummary{
		ExpenditureBreakdown: AggregateExpenditure(txs),
		TotalSpend:           spend,
		Loans:                details,
		TotalEMI:             emi,
		DisposableIncome:     roundMoney(decimal.NewFromFloat(disposable)),
		CanRepay:             canRepay,
	}
}

// EMI computes the fixed monthly installment of an amortized loan:
//
//	r   = annualRatePct / 12 / 100
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. Non-positive tenure or principal yields zero.
func EMI(principal, annualRatePct float64, months int) float64 {
	if months <= 0 || principal <= 0 {
		return 0
	}
	p := decimal.NewFromFloat(principal)
	if annualRatePct == 0 {
		return roundMoney(p.Div(decimal.NewFromInt(int64(months))))
	}
	r := annualRatePct / 12 / 100
	factor := math.Pow(1+r, float64(months))
	return roundMoney(decimal.NewFromFloat(principal * r * factor / (factor - 1)))
}

func debitTotals(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsDebit() {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}
	return totals
}

func roundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Package seed generates reproducible demo data: individuals, accounts, transactions and
// loans shaped by a persona table. All randomness comes from one seeded source.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPostalCode = "110001"
	minPrincipal      = 10000.0
	minBalance        = 1000.0
	survivalIncome    = 15000.0
)

var (
	spendCategories = []string{"Food", "Rent", "Utilities", "Shopping", "Entertainment", "Medical", "Travel", "Education", "Investment", "Insurance"}
	merchants       = map[string][]string{
		"Food":          {"Swiggy", "Zomato", "Domino's", "Local Restaurant", "Grocery Store"},
		"Rent":          {"Landlord Transfer", "NoBroker", "Housing Society"},
		"Utilities":     {"BESCOM", "Airtel", "Jio Fiber", "Water Bill"},
		"Shopping":      {"Amazon", "Flipkart", "Myntra", "DMart"},
		"Entertainment": {"Netflix", "BookMyShow", "PVR Cinemas", "Spotify"},
		"Medical":       {"Apollo Pharmacy", "Practo", "Hospital Bill"},
		"Travel":        {"Uber", "Ola", "IRCTC", "Indigo"},
		"Education":     {"Udemy", "Coursera", "School Fees", "Tuition"},
		"Investment":    {"Zerodha", "Groww", "Mutual Fund SIP"},
		"Insurance":     {"LIC Premium", "Health Insurance", "Term Insurance"},
		"Gambling":      {"Dream11", "RummyCircle", "Online Casino"},
		"Loan":          {"KreditBee", "MoneyTap", "PayLater"},
	}
	paymentModes = []string{"UPI", "Card", "NetBanking", "Cash"}
	banks        = []string{"HDFC", "ICICI", "SBI", "Axis", "Kotak"}
)

// loanProduct bounds the terms generated for one loan type
type loanProduct struct {
	kind             models.LoanType
	minRate, maxRate float64
	minTenure        int
	maxTenure        int
	minMultiple      float64
	maxMultiple      float64
}

var loanProducts = []loanProduct{
	{models.LoanPersonal, 10.5, 16.5, 12, 60, 4, 12},
	{models.LoanHome, 8.3, 9.8, 120, 300, 20, 100},
	{models.LoanAuto, 8.5, 11.5, 36, 84, 10, 20},
	{models.LoanEducation, 7.5, 12.5, 60, 180, 15, 40},
	{models.LoanCreditCard, 18, 42, 6, 36, 0.3, 4},
	{models.LoanBusiness, 11, 18, 24, 120, 20, 60},
	{models.LoanGold, 7, 12, 6, 36, 2, 8},
}

// Dataset is the generated demo population
type Dataset struct {
	Users        []*models.Snapshot
	Accounts     []*models.Account
	Transactions []*models.Transaction
	Loans        []*models.Loan
}

// Exposure returns the total outstanding loan amount
func (d *Dataset) Exposure() float64 {
	total := decimal.Zero
	for _, l := range d.Loans {
		total = total.Add(decimal.NewFromFloat(l.OutstandingAmount))
	}
	return total.Round(2).InexactFloat64()
}

// Generator builds datasets from a seeded random source
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator returns a generator whose output depends only on seed and now
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now.UTC()}
}

// Generate builds one individual per persona with an account, transactions and loans
func (g *Generator) Generate(personas []Persona) (*Dataset, error) {
	ds := &Dataset{}
	for i, p := range personas {
		user, err := g.user(fmt.Sprintf("U-2026-%03d", i+1), p)
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", p.Name, err)
		}
		account := g.account(user.ID, p)
		ds.Users = append(ds.Users, user)
		ds.Accounts = append(ds.Accounts, account)
		ds.Transactions = append(ds.Transactions, g.transactions(user.ID, account.ID, p)...)
		ds.Loans = append(ds.Loans, g.loans(user.ID, p)...)
	}
	return ds, nil
}

func (g *Generator) user(id string, p Persona) (*models.Snapshot, error) {
	scenario := p.Scenario
	s := &models.Snapshot{
		ID:                          id,
		Name:                        p.Name,
		Occupation:                  p.Occupation,
		MonthlyIncome:               p.Income,
		SalaryCreditVarianceDays:    p.VarianceDays,
		LiquidityCoverageRatio:      optional(p.CoverageRatio),
		RemittanceVolatilityPercent: p.RemittanceDrop,
		MicroCreditTxCount:          p.MicroCreditTx,
		CreditCardUtilization:       optional(p.Utilization),
		ATMWithdrawalVelocity:       optional(p.ATMVelocity),
		InquiryCount7Days:           p.Inquiries,
		DiscretionarySpendReduction: p.SpendReductionPct,
		UtilityPaymentLatencyDays:   p.UtilityLagDays,
		HighRiskMerchantTxCount:     p.RiskyMerchantTx,
		InsurancePremiumStatus:      models.InsuranceActive,
		SIPConsistencyScore:         optional(p.SIPScore),
		PortfolioLiquidationFlag:    p.Liquidation,
		PledgeActivityFlag:          p.Pledge,
		EmployerContribution:        p.EmployerContribution,
		EmployerContributionGap:     p.ContributionGap,
		TaxComplianceStatus:         p.Tax,
		JobSearchActivityIndex:      p.JobSearch,
		PostalCode:                  p.PostalCode,
		DisasterZoneFlag:            p.Disaster,
		InfrastructureFailureFlag:   p.InfraFailure,
		DistressCategory:            &scenario,
		CreatedAt:                   g.now,
		UpdatedAt:                   g.now,
	}
	if p.SIPStopped {
		s.SIPConsistencyScore = models.Float(0)
	}
	if p.InsuranceLapsed {
		s.InsurancePremiumStatus = models.InsuranceLapsed
	}
	if s.TaxComplianceStatus == "" {
		s.TaxComplianceStatus = models.TaxCompliant
	}
	if s.PostalCode == "" {
		s.PostalCode = defaultPostalCode
	}

	result, err := engine.Score(s)
	if err != nil {
		return nil, err
	}
	s.RiskScore = result.Score
	s.Status = result.Status
	return s, nil
}

func (g *Generator) account(userID string, p Persona) *models.Account {
	multiplier := g.between(0.05, 1.2)
	if p.Band == models.StatusClean || p.Band == models.StatusSafe {
		multiplier = g.between(0.5, 4)
	}
	return &models.Account{
		ID:       "ACC-" + userID,
		UserID:   userID,
		Type:     "Savings",
		Balance:  money(max(p.Income*multiplier, minBalance)),
		BankName: g.pick(banks),
	}
}

// spendRatio is the share of income the persona spends in a month
func (g *Generator) spendRatio(band models.Status) float64 {
	switch band {
	case models.StatusClean:
		return g.between(0.35, 0.70)
	case models.StatusSafe:
		return g.between(0.70, 0.95)
	case models.StatusWarning:
		return g.between(0.95, 1.25)
	default:
		return g.between(1.3, 2.8)
	}
}

func (g *Generator) transactions(userID, accountID string, p Persona) []*models.Transaction {
	var txs []*models.Transaction

	if p.Income > 0 {
		txs = append(txs, &models.Transaction{
			ID:           g.id(),
			UserID:       userID,
			AccountID:    accountID,
			Amount:       money(p.Income),
			Currency:     "INR",
			Timestamp:    g.now.AddDate(0, 0, -(1 + g.rng.Intn(7))),
			Category:     "Salary",
			MerchantName: "Employer Payroll",
			PaymentMode:  "NEFT",
			Direction:    models.DirectionCredit,
		})
	}

	target := p.Income * g.spendRatio(p.Band)
	if p.Income < survivalIncome {
		target = max(target, g.between(10000, 18000))
	}

	type draft struct {
		category string
		amount   float64
	}
	count := g.txCount(p.Income)
	drafts := make([]draft, 0, count)
	sum := 0.0
	for range count {
		category := g.pick(spendCategories)
		if p.RiskyMerchantTx > 5 && g.rng.Float64() < 0.35 {
			category = "Gambling"
		}
		if p.MicroCreditTx > 3 && g.rng.Float64() < 0.25 {
			category = "Loan"
		}
		amount := g.draftAmount(category)
		drafts = append(drafts, draft{category: category, amount: amount})
		sum += amount
	}

	scale := target / sum
	for _, d := range drafts {
		amount := money(d.amount * scale * g.between(0.85, 1.15))
		if amount <= 0 {
			continue
		}
		txs = append(txs, &models.Transaction{
			ID:           g.id(),
			UserID:       userID,
			AccountID:    accountID,
			Amount:       amount,
			Currency:     "INR",
			Timestamp:    g.now.Add(-time.Duration(g.rng.Intn(31)*24+g.rng.Intn(24)) * time.Hour),
			Category:     d.category,
			MerchantName: g.pick(merchants[d.category]),
			PaymentMode:  g.pick(paymentModes),
			Direction:    models.DirectionDebit,
		})
	}
	return txs
}

func (g *Generator) txCount(income float64) int {
	switch {
	case income < 30000:
		return g.intBetween(15, 35)
	case income < 100000:
		return g.intBetween(35, 70)
	default:
		return g.intBetween(70, 120)
	}
}

func (g *Generator) draftAmount(category string) float64 {
	switch category {
	case "Rent":
		return g.between(8000, 30000)
	case "Shopping", "Travel", "Medical":
		return g.between(1000, 15000)
	case "Gambling", "Loan":
		return g.between(500, 25000)
	case "Investment", "Insurance":
		return g.between(2000, 20000)
	default:
		return g.between(50, 3000)
	}
}

func (g *Generator) loans(userID string, p Persona) []*models.Loan {
	var count int
	switch p.Band {
	case models.StatusClean:
		count = g.intBetween(0, 2)
	case models.StatusSafe:
		count = g.intBetween(1, 2)
	case models.StatusWarning:
		count = g.intBetween(2, 3)
	default:
		count = g.intBetween(3, 5)
	}

	loans := make([]*models.Loan, 0, count)
	for range count {
		product := loanProducts[g.rng.Intn(len(loanProducts))]
		rate := g.between(product.minRate, product.maxRate)
		tenure := g.intBetween(product.minTenure, product.maxTenure)

		multiple := g.between(product.minMultiple, product.maxMultiple)
		if product.kind == models.LoanHome && p.Income > 50000 {
			multiple = g.between(50, 100)
		}
		principal := max(p.Income*multiple, minPrincipal)

		remaining := g.intBetween(tenure/5, tenure)
		outstanding := principal * float64(remaining) / float64(tenure) * g.between(0.85, 1.15)

		loans = append(loans, &models.Loan{
			ID:                    g.id(),
			UserID:                userID,
			Type:                  product.kind,
			PrincipalAmount:       money(principal),
			OutstandingAmount:     money(outstanding),
			MonthlyEMI:            engine.EMI(principal, rate, tenure),
			InterestRate:          money(rate),
			TenureMonths:          tenure,
			RemainingTenureMonths: remaining,
			StartDate:             g.now.AddDate(0, 0, -30*(tenure-remaining)),
		})
	}
	return loans
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// intBetween returns an int in [lo, hi]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// id draws a v4 uuid from the seeded source so ids repeat across runs
func (g *Generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

// optional copies a persona value so generated snapshots never share it
func optional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Float(*v)
}

func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Writer stores generated records
type Writer interface {
	Reset(ctx context.Context) error
	CreateUser(ctx context.Context, s *models.Snapshot) error
	CreateAccount(ctx context.Context, a *models.Account) error
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	CreateLoan(ctx context.Context, l *models.Loan) error
}

// Load replaces the stored data with ds
func Load(ctx context.Context, w Writer, ds *Dataset) error {
	if err := w.Reset(ctx); err != nil {
		return err
	}
	for _, u := range ds.Users {
		if err := w.CreateUser(ctx, u); err != nil {
			return err
		}
	}
	for _, a := range ds.Accounts {
		if err := w.CreateAccount(ctx, a); err != nil {
			return err
		}
	}
	for _, l := range ds.Loans {
		if err := w.CreateLoan(ctx, l); err != nil {
			return err
		}
	}
	for _, tx := range ds.Transactions {
		if err := w.CreateTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

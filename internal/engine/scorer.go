package engine

import (
	"fmt"
	"math"

	"github.com/Dan9191/risk-engine/internal/models"
)

// Indicator group weights in percent. They sum to 100.
const (
	WeightLiquidity   = 30
	WeightDebt        = 20
	WeightOperational = 10
	WeightAssets      = 15
	WeightEmployment  = 15
	WeightGeo         = 10
)

// Tier thresholds, inclusive lower bounds
const (
	EmergencyThreshold = 85
	CriticalThreshold  = 75
	WarningThreshold   = 50
	SafeThreshold      = 35
)

// GroupScores holds each indicator group's sub-score on a 0-100 scale
type GroupScores struct {
	Liquidity   float64 `json:"liquidity"`
	Debt        float64 `json:"debt"`
	Operational float64 `json:"operational"`
	Assets      float64 `json:"assets"`
	Employment  float64 `json:"employment"`
	Geo         float64 `json:"geo"`
}

// Result is the outcome of scoring one snapshot
type Result struct {
	Score  int           `json:"score"`
	Status models.Status `json:"status"`
	Groups GroupScores   `json:"groups"`
}

// Score computes the weighted 0-100 risk score and its status tier.
//
// Every indicator moves the score in one fixed direction. Liquidity coverage ratio, SIP
// consistency and employer contribution lower it; every count, percent, lag and flag
// raises it. Each term is capped so a group never exceeds 100.
func Score(s *models.Snapshot) (Result, error) {
	if err := Validate(s); err != nil {
		return Result{}, err
	}

	g := GroupScores{
		Liquidity:   liquidityScore(s),
		Debt:        debtScore(s),
		Operational: operationalScore(s),
		Assets:      assetScore(s),
		Employment:  employmentScore(s),
		Geo:         geoScore(s),
	}
	weighted := (g.Liquidity*WeightLiquidity +
		g.Debt*WeightDebt +
		g.Operational*WeightOperational +
		g.Assets*WeightAssets +
		g.Employment*WeightEmployment +
		g.Geo*WeightGeo) / 100

	score := clampScore(int(math.Round(weighted)))
	return Result{Score: score, Status: Tier(score), Groups: g}, nil
}

// Tier maps a score to its status band. The score is clamped to [0, 100] first.
func Tier(score int) models.Status {
	switch score = clampScore(score); {
	case score >= EmergencyThreshold:
		return models.StatusEmergency
	case score >= CriticalThreshold:
		return models.StatusCritical
	case score >= WarningThreshold:
		return models.StatusWarning
	case score >= SafeThreshold:
		return models.StatusSafe
	default:
		return models.StatusClean
	}
}

// Validate rejects snapshots whose numeric or enum fields are out of domain
func Validate(s *models.Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: snapshot is required", models.ErrInvalidInput)
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"monthly income", s.MonthlyIncome},
		{"employer contribution", s.EmployerContribution},
		{"liquidity coverage ratio", s.CoverageRatio()},
		{"remittance volatility percent", s.RemittanceVolatilityPercent},
		{"credit card utilization", s.Utilization()},
		{"ATM withdrawal velocity", s.ATMVelocity()},
		{"discretionary spend reduction", s.DiscretionarySpendReduction},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) || a.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", models.ErrInvalidInput, a.name, a.value)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"failed auto-debit count", s.FailedAutoDebitCount},
		{"micro-credit transaction count", s.MicroCreditTxCount},
		{"credit inquiry count", s.InquiryCount7Days},
		{"utility payment latency days", s.UtilityPaymentLatencyDays},
		{"high-risk merchant transaction count", s.HighRiskMerchantTxCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", models.ErrInvalidInput, c.name, c.value)
		}
	}

	indices := []struct {
		name  string
		value float64
	}{
		{"SIP consistency score", s.SIPConsistency()},
		{"job search activity index", s.JobSearchActivityIndex},
	}
	for _, idx := range indices {
		if math.IsNaN(idx.value) || idx.value < 0 || idx.value > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", models.ErrInvalidInput, idx.name, idx.value)
		}
	}

	switch s.InsurancePremiumStatus {
	case "", models.InsuranceActive, models.InsuranceLapsed:
	default:
		return fmt.Errorf("%w: unknown insurance premium status %q", models.ErrInvalidInput, s.InsurancePremiumStatus)
	}
	switch s.TaxComplianceStatus {
	case "", models.TaxCompliant, models.TaxDelayed, models.TaxNonCompliant:
	default:
		return fmt.Errorf("%w: unknown tax compliance status %q", models.ErrInvalidInput, s.TaxComplianceStatus)
	}
	return nil
}

func liquidityScore(s *models.Snapshot) float64 {
	var score float64
	if s.SalaryCreditVarianceDays > 0 {
		score += ratio(float64(s.SalaryCreditVarianceDays), 15) * 25
	}
	score += clamp01((3-s.CoverageRatio())/3) * 30
	score += ratio(float64(s.FailedAutoDebitCount), 3) * 25
	score += ratio(s.RemittanceVolatilityPercent, 100) * 20
	return score
}

func debtScore(s *models.Snapshot) float64 {
	var score float64
	score += ratio(float64(s.MicroCreditTxCount), 10) * 25
	score += ratio(s.Utilization(), 120) * 35
	score += clamp01((s.ATMVelocity()-1)/2) * 20
	score += ratio(float64(s.InquiryCount7Days), 10) * 20
	return score
}

func operationalScore(s *models.Snapshot) float64 {
	var score float64
	score += ratio(s.DiscretionarySpendReduction, 100) * 20
	score += ratio(float64(s.UtilityPaymentLatencyDays), 60) * 30
	score += ratio(float64(s.HighRiskMerchantTxCount), 20) * 30
	if s.InsurancePremiumStatus == models.InsuranceLapsed {
		score += 20
	}
	return score
}

func assetScore(s *models.Snapshot) float64 {
	score := (1 - s.SIPConsistency()) * 40
	for _, flag := range []bool{s.AssetVolatilityFlag, s.PortfolioLiquidationFlag, s.PledgeActivityFlag} {
		if flag {
			score += 20
		}
	}
	return score
}

func employmentScore(s *models.Snapshot) float64 {
	var score float64
	if s.EmployerContribution <= 0 {
		score += 25
	}
	if s.EmployerContributionGap {
		score += 25
	}
	switch s.TaxComplianceStatus {
	case models.TaxDelayed:
		score += 12.5
	case models.TaxNonCompliant:
		score += 25
	}
	score += s.JobSearchActivityIndex * 25
	return score
}

func geoScore(s *models.Snapshot) float64 {
	var score float64
	if s.DisasterZoneFlag {
		score += 60
	}
	if s.InfrastructureFailureFlag {
		score += 40
	}
	return score
}

// ratio returns v/limit capped to [0, 1]
func ratio(v, limit float64) float64 {
	return clamp01(v / limit)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

package engine

import (
	"fmt"
	"strings"

	"github.com/Dan9191/risk-engine/internal/models"
)

type explanationRule struct {
	feature  string
	impact   int
	matches  func(s *models.Snapshot) bool
	describe func(s *models.Snapshot) string
}

// explanationRules are evaluated in order; any number of them may fire
var explanationRules = []explanationRule{
	{
		feature: "Employment Signal",
		impact:  15,
		matches: func(s *models.Snapshot) bool { return s.EmployerContribution == 0 },
		describe: func(*models.Snapshot) string {
			return "Lack of steady employment signal"
		},
	},
	{
		feature: "Liquidity Crunch",
		impact:  18,
		matches: func(s *models.Snapshot) bool {
			return strings.Contains(strings.ToLower(s.Category()), "liquidity")
		},
		describe: func(*models.Snapshot) string {
			return "Low coverage ratio detected"
		},
	},
	{
		feature: "Credit Utilization",
		impact:  12,
		matches: func(s *models.Snapshot) bool { return s.Utilization() > 50 },
		describe: func(s *models.Snapshot) string {
			return fmt.Sprintf("Usage is %.1f%% of limit", s.Utilization())
		},
	},
	{
		feature: "Geo-Risk",
		impact:  25,
		matches: func(s *models.Snapshot) bool { return s.DisasterZoneFlag },
		describe: func(*models.Snapshot) string {
			return "Location in active disaster zone"
		},
	},
}

var generalRisk = models.Reason{
	Feature:     "General Risk",
	Impact:      5,
	Description: "Standard usage patterns",
}

// Explain lists the reasons behind a snapshot's score in rule order. When no rule
// matches a single "General Risk" entry is returned.
func Explain(s *models.Snapshot) []models.Reason {
	reasons := make([]models.Reason, 0, len(explanationRules))
	for _, rule := range explanationRules {
		if rule.matches(s) {
			reasons = append(reasons, models.Reason{
				Feature:     rule.feature,
				Impact:      rule.impact,
				Description: rule.describe(s),
			})
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, generalRisk)
	}
	return reasons
}

// Assessment is a scored snapshot together with its explanation
type Assessment struct {
	Result
	Reasons []models.Reason `json:"reasons"`
}

// Assess scores and explains s. Either both succeed or an error is returned.
func Assess(s *models.Snapshot) (Assessment, error) {
	result, err := Score(s)
	if err != nil {
		return Assessment{}, err
	}
	return Assessment{Result: result, Reasons: Explain(s)}, nil
}

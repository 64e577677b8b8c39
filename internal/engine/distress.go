package engine

import (
	"context"
	"fmt"

	"github.com/Dan9191/risk-engine/internal/models"
)

// Lookup resolves an individual id to its current snapshot
type Lookup interface {
	Get(ctx context.Context, id string) (*models.Snapshot, error)
}

// DistressRule is the adjustment applied for one trigger
type DistressRule struct {
	// ScoreFloor is the minimum score after the adjustment; higher scores are kept.
	ScoreFloor int
	// MinFloor is the lowest value ScoreFloor may be configured to.
	MinFloor int
	// MinStatus is the least severe tier the rule may leave the individual in.
	MinStatus        models.Status
	Category         string
	MarkDisasterZone bool
}

// Policy holds one rule per trigger plus the rule used for unrecognized triggers.
// The floors are product policy, not derived values.
type Policy struct {
	Rules    map[models.Trigger]DistressRule
	Fallback DistressRule
}

// DefaultPolicy returns the stock rule table
func DefaultPolicy() Policy {
	return Policy{
		Rules: map[models.Trigger]DistressRule{
			models.TriggerJobLoss: {
				ScoreFloor: 95,
				MinFloor:   95,
				MinStatus:  models.StatusEmergency,
				Category:   "Job Loss (Structural)",
			},
			models.TriggerSalaryDelay: {
				ScoreFloor: 70,
				MinFloor:   70,
				MinStatus:  models.StatusWarning,
				Category:   "Salary Delay (Liquidity)",
			},
			models.TriggerMedicalEmergency: {
				ScoreFloor: 75,
				MinStatus:  models.StatusCritical,
				Category:   "Medical Emergency (Transient)",
			},
			models.TriggerNaturalDisaster: {
				ScoreFloor:       75,
				MinStatus:        models.StatusCritical,
				Category:         "Natural Disaster (Environmental)",
				MarkDisasterZone: true,
			},
			models.TriggerBusinessFailure: {
				ScoreFloor: 75,
				MinStatus:  models.StatusCritical,
				Category:   "Business Failure (Structural)",
			},
			models.TriggerOther: {
				ScoreFloor: 0,
				MinStatus:  models.StatusClean,
				Category:   "Other",
			},
		},
		Fallback: DistressRule{
			ScoreFloor: 0,
			MinStatus:  models.StatusClean,
			Category:   "Other",
		},
	}
}

// SetFloor overrides the score floor of one trigger's rule
func (p Policy) SetFloor(t models.Trigger, floor int) {
	rule := p.Rules[t]
	rule.ScoreFloor = floor
	p.Rules[t] = rule
}

// Validate checks that every known trigger has a rule, that no floor is configured below
// the rule's minimum floor and that each floor lands in a tier at least as severe as the
// rule's minimum status.
func (p Policy) Validate() error {
	for _, t := range models.Triggers {
		rule, ok := p.Rules[t]
		if !ok {
			return fmt.Errorf("no distress rule for trigger %s", t)
		}
		if err := rule.validate(); err != nil {
			return fmt.Errorf("trigger %s: %w", t, err)
		}
	}
	if err := p.Fallback.validate(); err != nil {
		return fmt.Errorf("fallback rule: %w", err)
	}
	return nil
}

// Rule returns the rule for t, or the fallback rule for unrecognized triggers
func (p Policy) Rule(t models.Trigger) DistressRule {
	if rule, ok := p.Rules[t]; ok {
		return rule
	}
	return p.Fallback
}

func (r DistressRule) validate() error {
	if r.ScoreFloor < 0 || r.ScoreFloor > 100 {
		return fmt.Errorf("score floor %d outside [0, 100]", r.ScoreFloor)
	}
	if r.ScoreFloor < r.MinFloor {
		return fmt.Errorf("score floor %d below the minimum of %d", r.ScoreFloor, r.MinFloor)
	}
	if r.MinStatus.Rank() < 0 {
		return fmt.Errorf("unknown minimum status %q", r.MinStatus)
	}
	if Tier(r.ScoreFloor).Rank() < r.MinStatus.Rank() {
		return fmt.Errorf("score floor %d maps to %s, below minimum status %s", r.ScoreFloor, Tier(r.ScoreFloor), r.MinStatus)
	}
	return nil
}

// Classifier applies distress triggers to snapshots
type Classifier struct {
	policy Policy
}

// NewClassifier validates the policy and builds a classifier over it
func NewClassifier(policy Policy) (*Classifier, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid distress policy: %w", err)
	}
	return &Classifier{policy: policy}, nil
}

// Apply returns a copy of s adjusted for trigger t. The score is raised to the rule's
// floor but never lowered, and the status is re-derived from the resulting score.
func (c *Classifier) Apply(s *models.Snapshot, t models.Trigger) *models.Snapshot {
	rule := c.policy.Rule(t)
	out := s.Clone()

	if out.RiskScore < rule.ScoreFloor {
		out.RiskScore = rule.ScoreFloor
	}
	out.RiskScore = clampScore(out.RiskScore)
	out.Status = Tier(out.RiskScore)

	if rule.MarkDisasterZone {
		out.DisasterZoneFlag = true
	}
	category := rule.Category
	out.DistressCategory = &category
	if t.Known() {
		out.DistressTrigger = t
	} else {
		out.DistressTrigger = models.TriggerOther
	}
	return out
}

// Classify resolves id through lookup and applies t to the stored snapshot
func (c *Classifier) Classify(ctx context.Context, lookup Lookup, id string, t models.Trigger) (*models.Snapshot, error) {
	s, err := lookup.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownIndividual, id)
	}
	return c.Apply(s, t), nil
}

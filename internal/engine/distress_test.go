package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
)

type mapLookup map[string]*models.Snapshot

func (m mapLookup) Get(_ context.Context, id string) (*models.Snapshot, error) {
	s, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrUnknownIndividual)
	}
	return s, nil
}

func newClassifier(t *testing.T) *engine.Classifier {
	t.Helper()
	c, err := engine.NewClassifier(engine.DefaultPolicy())
	require.NoError(t, err)
	return c
}

func withScore(score int) *models.Snapshot {
	s := neutralSnapshot()
	s.RiskScore = score
	s.Status = engine.Tier(score)
	return s
}

func TestClassifier_JobLossForcesEmergency(t *testing.T) {
	c := newClassifier(t)

	for _, prior := range []int{0, 10, 50, 84, 94, 95, 98, 100} {
		t.Run(fmt.Sprintf("prior %d", prior), func(t *testing.T) {
			out := c.Apply(withScore(prior), models.TriggerJobLoss)

			assert.Equal(t, models.StatusEmergency, out.Status)
			assert.GreaterOrEqual(t, out.RiskScore, 95)
			assert.GreaterOrEqual(t, out.RiskScore, prior)
			assert.Equal(t, models.TriggerJobLoss, out.DistressTrigger)
			assert.Equal(t, "Job Loss (Structural)", out.Category())
		})
	}
}

func TestClassifier_SalaryDelayRaisesToFloor(t *testing.T) {
	c := newClassifier(t)

	low := c.Apply(withScore(40), models.TriggerSalaryDelay)
	assert.Equal(t, 70, low.RiskScore)
	assert.Equal(t, models.StatusWarning, low.Status)

	high := c.Apply(withScore(80), models.TriggerSalaryDelay)
	assert.Equal(t, 80, high.RiskScore)
	assert.Equal(t, models.StatusCritical, high.Status)
	assert.Contains(t, high.Category(), "Liquidity")
}

func TestClassifier_NaturalDisasterMarksZone(t *testing.T) {
	c := newClassifier(t)

	out := c.Apply(withScore(20), models.TriggerNaturalDisaster)

	assert.True(t, out.DisasterZoneFlag)
	assert.Equal(t, 75, out.RiskScore)
	assert.Equal(t, models.StatusCritical, out.Status)
}

func TestClassifier_EveryTriggerKeepsStatusConsistent(t *testing.T) {
	c := newClassifier(t)

	for _, trigger := range models.Triggers {
		for _, prior := range []int{0, 36, 60, 77, 90} {
			out := c.Apply(withScore(prior), trigger)
			assert.Equal(t, engine.Tier(out.RiskScore), out.Status, "trigger %s prior %d", trigger, prior)
			assert.GreaterOrEqual(t, out.RiskScore, prior, "trigger %s never lowers the score", trigger)
		}
	}
}

func TestClassifier_UnknownTriggerUsesFallback(t *testing.T) {
	c := newClassifier(t)

	out := c.Apply(withScore(42), models.Trigger("alien_abduction"))

	assert.Equal(t, 42, out.RiskScore)
	assert.Equal(t, models.StatusSafe, out.Status)
	assert.Equal(t, models.TriggerOther, out.DistressTrigger)
	assert.Equal(t, "Other", out.Category())
}

func TestClassifier_ReconcilesStaleStatus(t *testing.T) {
	c := newClassifier(t)
	s := withScore(60)
	s.Status = models.StatusClean

	out := c.Apply(s, models.TriggerOther)

	assert.Equal(t, models.StatusWarning, out.Status)
}

func TestClassifier_DoesNotMutateInput(t *testing.T) {
	c := newClassifier(t)
	s := withScore(10)
	category := "Stable Income"
	s.DistressCategory = &category

	out := c.Apply(s, models.TriggerNaturalDisaster)

	assert.Equal(t, 10, s.RiskScore)
	assert.False(t, s.DisasterZoneFlag)
	assert.Equal(t, "Stable Income", s.Category())
	assert.NotSame(t, s, out)
}

func TestClassifier_Classify(t *testing.T) {
	c := newClassifier(t)
	lookup := mapLookup{"U-1": withScore(30)}

	out, err := c.Classify(context.Background(), lookup, "U-1", models.TriggerJobLoss)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmergency, out.Status)

	_, err = c.Classify(context.Background(), lookup, "U-404", models.TriggerJobLoss)
	assert.ErrorIs(t, err, models.ErrUnknownIndividual)

	_, err = c.Classify(context.Background(), mapLookup{"U-nil": nil}, "U-nil", models.TriggerJobLoss)
	assert.ErrorIs(t, err, models.ErrUnknownIndividual)
}

func TestPolicy_Validate(t *testing.T) {
	require.NoError(t, engine.DefaultPolicy().Validate())

	missing := engine.DefaultPolicy()
	delete(missing.Rules, models.TriggerBusinessFailure)
	assert.Error(t, missing.Validate())

	inconsistent := engine.DefaultPolicy()
	inconsistent.SetFloor(models.TriggerJobLoss, 80)
	assert.Error(t, inconsistent.Validate())
	_, err := engine.NewClassifier(inconsistent)
	assert.Error(t, err)

	outOfRange := engine.DefaultPolicy()
	outOfRange.SetFloor(models.TriggerSalaryDelay, 120)
	assert.Error(t, outOfRange.Validate())
}

func TestPolicy_ConfiguredFloor(t *testing.T) {
	policy := engine.DefaultPolicy()
	policy.SetFloor(models.TriggerSalaryDelay, 80)
	c, err := engine.NewClassifier(policy)
	require.NoError(t, err)

	out := c.Apply(withScore(20), models.TriggerSalaryDelay)
	assert.Equal(t, 80, out.RiskScore)
	assert.Equal(t, models.StatusCritical, out.Status)
}

func TestPolicy_FloorsCannotBeLowered(t *testing.T) {
	tests := []struct {
		name    string
		trigger models.Trigger
		floor   int
	}{
		{"job loss in emergency band", models.TriggerJobLoss, 86},
		{"job loss just below", models.TriggerJobLoss, 94},
		{"salary delay in warning band", models.TriggerSalaryDelay, 50},
		{"salary delay just below", models.TriggerSalaryDelay, 69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := engine.DefaultPolicy()
			policy.SetFloor(tt.trigger, tt.floor)

			_, err := engine.NewClassifier(policy)
			assert.Error(t, err)
		})
	}
}

func TestPolicy_MedicalFloorKeepsItsTier(t *testing.T) {
	policy := engine.DefaultPolicy()
	policy.SetFloor(models.TriggerMedicalEmergency, 75)
	require.NoError(t, policy.Validate())

	policy.SetFloor(models.TriggerMedicalEmergency, 74)
	assert.Error(t, policy.Validate())
}

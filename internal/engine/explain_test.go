package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
)

func TestExplain_NeutralSnapshotFallsBack(t *testing.T) {
	reasons := engine.Explain(neutralSnapshot())

	assert.Equal(t, []models.Reason{
		{Feature: "General Risk", Impact: 5, Description: "Standard usage patterns"},
	}, reasons)
}

func TestExplain_EmploymentSignalOnly(t *testing.T) {
	s := neutralSnapshot()
	s.EmployerContribution = 0

	reasons := engine.Explain(s)

	assert.Equal(t, []models.Reason{
		{Feature: "Employment Signal", Impact: 15, Description: "Lack of steady employment signal"},
	}, reasons)
}

func TestExplain_CreditUtilizationInterpolatesPercent(t *testing.T) {
	s := neutralSnapshot()
	s.CreditCardUtilization = models.Float(88)

	reasons := engine.Explain(s)

	require.Len(t, reasons, 1)
	assert.Equal(t, "Credit Utilization", reasons[0].Feature)
	assert.Equal(t, 12, reasons[0].Impact)
	assert.Equal(t, "Usage is 88.0% of limit", reasons[0].Description)
}

func TestExplain_UtilizationThresholdIsExclusive(t *testing.T) {
	s := neutralSnapshot()
	s.CreditCardUtilization = models.Float(50)

	reasons := engine.Explain(s)

	require.Len(t, reasons, 1)
	assert.Equal(t, "General Risk", reasons[0].Feature)
}

func TestExplain_LiquidityCategoryCaseInsensitive(t *testing.T) {
	for _, category := range []string{"Severe Liquidity Crisis", "salary delay (liquidity)"} {
		s := neutralSnapshot()
		s.DistressCategory = &category

		reasons := engine.Explain(s)

		require.Len(t, reasons, 1, category)
		assert.Equal(t, "Liquidity Crunch", reasons[0].Feature)
		assert.Equal(t, 18, reasons[0].Impact)
	}
}

func TestExplain_AllRulesInEvaluationOrder(t *testing.T) {
	category := "Severe Liquidity Crisis"
	s := neutralSnapshot()
	s.EmployerContribution = 0
	s.DistressCategory = &category
	s.CreditCardUtilization = models.Float(92)
	s.DisasterZoneFlag = true

	reasons := engine.Explain(s)

	require.Len(t, reasons, 4)
	features := make([]string, 0, len(reasons))
	impacts := make([]int, 0, len(reasons))
	for _, r := range reasons {
		features = append(features, r.Feature)
		impacts = append(impacts, r.Impact)
	}
	assert.Equal(t, []string{"Employment Signal", "Liquidity Crunch", "Credit Utilization", "Geo-Risk"}, features)
	assert.Equal(t, []int{15, 18, 12, 25}, impacts)
}

func TestExplain_Deterministic(t *testing.T) {
	s := worstSnapshot()
	assert.Equal(t, engine.Explain(s), engine.Explain(s))
}

func TestAssess(t *testing.T) {
	s := neutralSnapshot()
	s.DisasterZoneFlag = true

	assessment, err := engine.Assess(s)
	require.NoError(t, err)
	assert.Equal(t, 10, assessment.Score)
	require.Len(t, assessment.Reasons, 1)
	assert.Equal(t, "Geo-Risk", assessment.Reasons[0].Feature)

	s.MonthlyIncome = -1
	assessment, err = engine.Assess(s)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Nil(t, assessment.Reasons)
}

package engine

import "github.com/Dan9191/risk-engine/internal/models"

var interventions = map[models.Trigger]models.Intervention{
	models.TriggerJobLoss: {
		Action:   "Emergency Protocol",
		Message:  "Income verification requested. Late fees waived for 30 days.",
		Category: "structural",
	},
	models.TriggerSalaryDelay: {
		Action:   "Grace Period",
		Message:  "Payment date shifted by 7 days. No penalty.",
		Category: "liquidity",
	},
	models.TriggerMedicalEmergency: {
		Action:   "Moratorium",
		Message:  "EMI moratorium offered for 60 days pending medical documentation.",
		Category: "transient",
	},
	models.TriggerNaturalDisaster: {
		Action:   "Disaster Relief",
		Message:  "Relief package activated. Repayments paused for the affected area.",
		Category: "environmental",
	},
	models.TriggerBusinessFailure: {
		Action:   "Restructuring",
		Message:  "Loan restructuring review scheduled. Tenure extension available.",
		Category: "structural",
	},
}

var holdIntervention = models.Intervention{
	Action:  "Hold",
	Message: "Analyzing inputs...",
}

// Recommend returns the remediation for a trigger. Triggers without a dedicated
// remediation, including unrecognized ones, get the Hold action.
func Recommend(t models.Trigger) models.Intervention {
	if iv, ok := interventions[t]; ok {
		return iv
	}
	return holdIntervention
}

package models

import "strings"

// Trigger is a reported real-world distress event
type Trigger string

const (
	TriggerJobLoss          Trigger = "JobLoss"
	TriggerSalaryDelay      Trigger = "SalaryDelay"
	TriggerMedicalEmergency Trigger = "MedicalEmergency"
	TriggerNaturalDisaster  Trigger = "NaturalDisaster"
	TriggerBusinessFailure  Trigger = "BusinessFailure"
	TriggerOther            Trigger = "Other"
)

// Triggers lists every known trigger
var Triggers = []Trigger{
	TriggerJobLoss,
	TriggerSalaryDelay,
	TriggerMedicalEmergency,
	TriggerNaturalDisaster,
	TriggerBusinessFailure,
	TriggerOther,
}

var triggerAliases = map[string]Trigger{
	"jobloss":           TriggerJobLoss,
	"job_loss":          TriggerJobLoss,
	"job":               TriggerJobLoss,
	"salarydelay":       TriggerSalaryDelay,
	"salary_delay":      TriggerSalaryDelay,
	"salary":            TriggerSalaryDelay,
	"medicalemergency":  TriggerMedicalEmergency,
	"medical_emergency": TriggerMedicalEmergency,
	"medical":           TriggerMedicalEmergency,
	"naturaldisaster":   TriggerNaturalDisaster,
	"natural_disaster":  TriggerNaturalDisaster,
	"disaster":          TriggerNaturalDisaster,
	"businessfailure":   TriggerBusinessFailure,
	"business_failure":  TriggerBusinessFailure,
	"business":          TriggerBusinessFailure,
	"other":             TriggerOther,
}

// ParseTrigger maps a reported code to a known trigger. Unrecognized codes are returned
// unchanged with ok=false; callers route them to the fallback rules.
func ParseTrigger(code string) (Trigger, bool) {
	if t, ok := triggerAliases[strings.ToLower(strings.TrimSpace(code))]; ok {
		return t, true
	}
	return Trigger(code), false
}

// Known reports whether t is one of the enumerated triggers
func (t Trigger) Known() bool {
	for _, k := range Triggers {
		if t == k {
			return true
		}
	}
	return false
}

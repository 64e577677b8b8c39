package models

import "fmt"

// Status is the severity tier derived from a risk score
type Status string

const (
	StatusClean     Status = "Clean"
	StatusSafe      Status = "Safe"
	StatusWarning   Status = "Warning"
	StatusCritical  Status = "Critical"
	StatusEmergency Status = "Emergency"
)

// Rank orders tiers by severity, Clean being 0. Unknown values rank -1.
func (s Status) Rank() int {
	switch s {
	case StatusClean:
		return 0
	case StatusSafe:
		return 1
	case StatusWarning:
		return 2
	case StatusCritical:
		return 3
	case StatusEmergency:
		return 4
	default:
		return -1
	}
}

// ParseStatus validates a stored status value
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st.Rank() < 0 {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// InsuranceStatus is the state of the individual's insurance premium
type InsuranceStatus string

const (
	InsuranceActive InsuranceStatus = "Active"
	InsuranceLapsed InsuranceStatus = "Lapsed"
)

// TaxStatus is the individual's tax compliance standing
type TaxStatus string

const (
	TaxCompliant    TaxStatus = "Compliant"
	TaxDelayed      TaxStatus = "Delayed"
	TaxNonCompliant TaxStatus = "NonCompliant"
)

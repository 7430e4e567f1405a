package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is an upstream employee document as delivered by the HR
// datastore. Field names and value types are not guaranteed; the
// normalizer resolves them against a schema adapter.
type RawRecord map[string]any

// Employee is the canonical employee-master view used by the rule
// evaluators. Records are read-only to the engine.
type Employee struct {
	EmployeeID    string
	Name          string
	BasicSalary   decimal.Decimal
	PAN           string
	State         string
	JobRole       string
	TaxRegime     string
	PFApplicable  bool
	ESIApplicable bool
	ESIExitMonth  string
	JoinDate      *time.Time
	ExitDate      *time.Time

	// TDS declaration figures, when the upstream record carries them
	TDSDeclarationAmount decimal.Decimal
	TDSProofAmount       decimal.Decimal
}

// ActiveInMonth reports whether the employee was employed at any point
// during the month starting at monthStart (inclusive) and ending at
// monthEnd (inclusive).
func (e Employee) ActiveInMonth(monthStart, monthEnd time.Time) bool {
	if e.JoinDate != nil && e.JoinDate.After(monthEnd) {
		return false
	}
	if e.ExitDate != nil && e.ExitDate.Before(monthStart) {
		return false
	}
	return true
}

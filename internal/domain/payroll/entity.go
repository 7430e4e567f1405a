package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is an upstream payroll document: either a flat per-employee
// line item or a run document wrapping an array of line items.
type RawRecord map[string]any

// Record is the canonical per-employee per-period payroll view. All
// money fields default to zero when the upstream record is missing or
// unparsable; the engine never rejects a record for bad numerics.
type Record struct {
	EmployeeID    string
	Period        string // YYYY-MM
	State         string
	TaxRegime     string
	PaymentDate   *time.Time
	Basic         decimal.Decimal
	DA            decimal.Decimal
	PFWage        decimal.Decimal
	Gross         decimal.Decimal
	Allowances    decimal.Decimal
	Reimbursement decimal.Decimal
	Deductions    decimal.Decimal
	Net           decimal.Decimal
	PF            decimal.Decimal // employee EPF contribution
	EPS           decimal.Decimal // employer pension-scheme share
	EmployerEPF   decimal.Decimal
	EmployerEPS   decimal.Decimal
	ESI           decimal.Decimal // employee ESI contribution
	ESIEmployer   decimal.Decimal
	PT            decimal.Decimal
	TDS           decimal.Decimal
	TDSExpected   decimal.Decimal
}

// History is one employee's payroll records in ascending payment-date
// order. Ties keep insertion order.
type History []Record

// Current returns the chronologically last record, which is the one
// rule evaluations run against.
func (h History) Current() (Record, bool) {
	if len(h) == 0 {
		return Record{}, false
	}
	return h[len(h)-1], true
}

// Baseline returns up to n records immediately preceding the current
// one, oldest first. The current record is never part of the baseline.
func (h History) Baseline(n int) []Record {
	if len(h) < 2 {
		return nil
	}
	prior := h[:len(h)-1]
	if len(prior) > n {
		prior = prior[len(prior)-n:]
	}
	return prior
}

package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func karnatakaRules() staterules.Rules {
	di := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return staterules.Rules{
		PTSlabs: map[string][]staterules.PTSlab{
			"Karnataka": {
				{Min: di(0), Max: di(14999), Amount: di(0)},
				{Min: di(15000), Max: di(99999999), Amount: di(200)},
			},
		},
		MinWages: map[string]decimal.Decimal{},
	}
}

func TestEvaluatePT_MissingDeduction(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-1", State: "Karnataka"}
	history := payroll.History{{EmployeeID: "EMP-1", Gross: d(20000)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = karnatakaRules()

	violations := evaluatePT(ec)

	missing := findByRule(violations, "pt_deduction_missing")
	require.Len(t, missing, 1)
	assert.Equal(t, compliancedomain.SeverityHigh, missing[0].Severity)
}

func TestEvaluatePT_ZeroAmountSlab(t *testing.T) {
	// Gross in the zero-amount band: no deduction expected, none made.
	emp := employee.Employee{EmployeeID: "EMP-2", State: "Karnataka"}
	history := payroll.History{{EmployeeID: "EMP-2", Gross: d(10000)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = karnatakaRules()

	assert.Empty(t, evaluatePT(ec))
}

func TestEvaluatePT_SlabMismatch(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-3", State: "Karnataka"}
	history := payroll.History{{EmployeeID: "EMP-3", Gross: d(20000), PT: d(150)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = karnatakaRules()

	violations := evaluatePT(ec)
	assert.Len(t, findByRule(violations, "pt_slab_mismatch"), 1)
	assert.Empty(t, findByRule(violations, "pt_double_deduction"))
}

func TestEvaluatePT_DoubleDeduction(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-4", State: "Karnataka"}
	history := payroll.History{{EmployeeID: "EMP-4", Gross: d(20000), PT: d(400)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = karnatakaRules()

	violations := evaluatePT(ec)
	assert.Len(t, findByRule(violations, "pt_double_deduction"), 1)
}

func TestEvaluatePT_DeductedWithoutSlab(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-5", State: "NoPTState"}
	history := payroll.History{{EmployeeID: "EMP-5", Gross: d(20000), PT: d(200)}}

	ec := newTestContext(emp, history, attendanceSummary())
	// Karnataka-only table, no default fallback.
	ec.Rules = karnatakaRules()

	violations := evaluatePT(ec)
	assert.Len(t, findByRule(violations, "pt_deducted_without_slab"), 1)
}

func TestEvaluatePT_NoSlabNoDeduction(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-6", State: "NoPTState"}
	history := payroll.History{{EmployeeID: "EMP-6", Gross: d(20000)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = karnatakaRules()

	assert.Empty(t, evaluatePT(ec))
}

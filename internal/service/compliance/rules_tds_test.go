package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateTDS_MissingPANLowRate(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-1"}
	history := payroll.History{{EmployeeID: "EMP-1", Gross: d(50000), TDS: d(5000)}} // 10%

	violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))

	pan := findByRule(violations, "tds_pan_missing")
	require.Len(t, pan, 1)
	assert.Equal(t, compliancedomain.SeverityHigh, pan[0].Severity)
}

func TestEvaluateTDS_MissingPANHighRate(t *testing.T) {
	// 20% withheld satisfies the no-PAN rule.
	emp := employee.Employee{EmployeeID: "EMP-2"}
	history := payroll.History{{EmployeeID: "EMP-2", Gross: d(50000), TDS: d(10000)}}

	violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))
	assert.Empty(t, findByRule(violations, "tds_pan_missing"))
}

func TestEvaluateTDS_RegimeMismatch(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-3", PAN: "ABCDE1234F", TaxRegime: "new"}
	history := payroll.History{{EmployeeID: "EMP-3", Gross: d(50000), TDS: d(10000), TaxRegime: "old"}}

	violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))
	assert.Len(t, findByRule(violations, "tds_regime_mismatch"), 1)
}

func TestEvaluateTDS_ExpectedMismatch(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-4", PAN: "ABCDE1234F"}

	t.Run("outside tolerance", func(t *testing.T) {
		history := payroll.History{{EmployeeID: "EMP-4", Gross: d(50000), TDS: d(4950), TDSExpected: d(5000)}}
		violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))
		assert.Len(t, findByRule(violations, "tds_expected_mismatch"), 1)
	})

	t.Run("within tolerance", func(t *testing.T) {
		history := payroll.History{{EmployeeID: "EMP-4", Gross: d(50000), TDS: d(4995), TDSExpected: d(5000)}}
		violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))
		assert.Empty(t, findByRule(violations, "tds_expected_mismatch"))
	})
}

func TestEvaluateTDS_DeclarationProofGap(t *testing.T) {
	emp := employee.Employee{
		EmployeeID:           "EMP-5",
		PAN:                  "ABCDE1234F",
		TDSDeclarationAmount: d(150000),
		TDSProofAmount:       d(100000),
	}
	history := payroll.History{{EmployeeID: "EMP-5", Gross: d(50000), TDS: d(10000)}}

	violations := evaluateTDS(newTestContext(emp, history, attendanceSummary()))

	gap := findByRule(violations, "tds_declaration_proof_gap")
	require.Len(t, gap, 1)
	assert.Equal(t, compliancedomain.SeverityLow, gap[0].Severity)
}

func TestEvaluateTDS_DuplicatePAN(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-6", PAN: "ABCDE1234F"}
	history := payroll.History{{EmployeeID: "EMP-6", Gross: d(50000), TDS: d(10000)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Population.DuplicatePANs["EMP-6"] = true

	violations := evaluateTDS(ec)

	dup := findByRule(violations, "tds_duplicate_pan")
	require.Len(t, dup, 1)
	assert.Equal(t, compliancedomain.SeverityHigh, dup[0].Severity)
}

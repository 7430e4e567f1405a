package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateESI_EligibilityThreshold(t *testing.T) {
	tests := []struct {
		name        string
		gross       float64
		wantMissing bool
	}{
		{"below ceiling fires", 20000, true},
		{"at ceiling fires", 21000, true},
		{"above ceiling does not fire", 22000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := employee.Employee{EmployeeID: "EMP-1"}
			history := payroll.History{{EmployeeID: "EMP-1", Gross: d(tt.gross)}}

			violations := evaluateESI(newTestContext(emp, history, attendanceSummary()))

			missing := findByRule(violations, "esi_deduction_missing")
			if tt.wantMissing {
				require.Len(t, missing, 1)
				assert.Equal(t, compliancedomain.SeverityHigh, missing[0].Severity)
			} else {
				assert.Empty(t, missing)
			}
		})
	}
}

func TestEvaluateESI_ContributionMismatch(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-2"}
	history := payroll.History{{
		EmployeeID:  "EMP-2",
		Gross:       d(20000),
		ESI:         d(200), // expected 150, off by more than 2
		ESIEmployer: d(650), // expected 650, exact
	}}

	violations := evaluateESI(newTestContext(emp, history, attendanceSummary()))

	assert.Len(t, findByRule(violations, "esi_employee_share_mismatch"), 1)
	assert.Empty(t, findByRule(violations, "esi_employer_share_mismatch"))
}

func TestEvaluateESI_CorrectContributions(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-3"}
	history := payroll.History{{
		EmployeeID:  "EMP-3",
		Gross:       d(20000),
		ESI:         d(150), // 0.75%
		ESIEmployer: d(650), // 3.25%
	}}

	violations := evaluateESI(newTestContext(emp, history, attendanceSummary()))
	assert.Empty(t, violations)
}

func TestEvaluateESI_ExitMonthRule(t *testing.T) {
	t.Run("crossed ceiling without exit month", func(t *testing.T) {
		emp := employee.Employee{EmployeeID: "EMP-4", ESIApplicable: true}
		history := payroll.History{{EmployeeID: "EMP-4", Gross: d(25000)}}

		violations := evaluateESI(newTestContext(emp, history, attendanceSummary()))
		assert.Len(t, findByRule(violations, "esi_exit_month_missing"), 1)
	})

	t.Run("exit month recorded for scan month", func(t *testing.T) {
		emp := employee.Employee{EmployeeID: "EMP-5", ESIApplicable: true, ESIExitMonth: "2026-08"}
		history := payroll.History{{EmployeeID: "EMP-5", Gross: d(25000)}}

		violations := evaluateESI(newTestContext(emp, history, attendanceSummary()))
		assert.Empty(t, findByRule(violations, "esi_exit_month_missing"))
	})
}

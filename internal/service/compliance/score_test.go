package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationsOf(category compliancedomain.Category, severities ...compliancedomain.Severity) []compliancedomain.Violation {
	violations := make([]compliancedomain.Violation, 0, len(severities))
	for _, severity := range severities {
		violations = append(violations, compliancedomain.Violation{
			Category: category,
			Severity: severity,
		})
	}
	return violations
}

func TestScoreViolations_EmptyList(t *testing.T) {
	score, level := scoreViolations(nil)
	assert.Equal(t, 0, score)
	assert.Equal(t, compliancedomain.RiskLow, level)
}

func TestScoreViolations_CategoryCap(t *testing.T) {
	// Three Highs in one category are 75 raw points, capped at 40.
	violations := violationsOf(compliancedomain.CategoryPF,
		compliancedomain.SeverityHigh, compliancedomain.SeverityHigh, compliancedomain.SeverityHigh)

	score, level := scoreViolations(violations)
	assert.Equal(t, 40, score)
	assert.Equal(t, compliancedomain.RiskMedium, level)
}

func TestScoreViolations_TotalCap(t *testing.T) {
	var violations []compliancedomain.Violation
	for _, category := range []compliancedomain.Category{
		compliancedomain.CategoryPF,
		compliancedomain.CategoryESI,
		compliancedomain.CategoryTDS,
		compliancedomain.CategoryAttendance,
	} {
		violations = append(violations, violationsOf(category,
			compliancedomain.SeverityHigh, compliancedomain.SeverityHigh)...)
	}

	// Four categories at 40 each would be 160; total caps at 100.
	score, level := scoreViolations(violations)
	assert.Equal(t, 100, score)
	assert.Equal(t, compliancedomain.RiskCritical, level)
}

func TestScoreViolations_AlwaysInBounds(t *testing.T) {
	severities := []compliancedomain.Severity{
		compliancedomain.SeverityLow,
		compliancedomain.SeverityMedium,
		compliancedomain.SeverityHigh,
		compliancedomain.SeverityCritical,
	}
	categories := []compliancedomain.Category{
		compliancedomain.CategoryPF, compliancedomain.CategoryESI, compliancedomain.CategoryPT,
		compliancedomain.CategoryTDS, compliancedomain.CategoryMinimumWage, compliancedomain.CategoryOvertime,
		compliancedomain.CategoryAttendance, compliancedomain.CategorySalary, compliancedomain.CategoryDataIntegrity,
	}

	var violations []compliancedomain.Violation
	for _, category := range categories {
		violations = append(violations, violationsOf(category, severities...)...)
		score, level := scoreViolations(violations)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, compliancedomain.MaxTotalScore)
		assert.NotEmpty(t, level)
	}
}

func TestRiskLevelBreakpoints(t *testing.T) {
	tests := []struct {
		score int
		want  compliancedomain.RiskLevel
	}{
		{0, compliancedomain.RiskLow},
		{20, compliancedomain.RiskLow},
		{21, compliancedomain.RiskMedium},
		{50, compliancedomain.RiskMedium},
		{51, compliancedomain.RiskHigh},
		{75, compliancedomain.RiskHigh},
		{76, compliancedomain.RiskCritical},
		{100, compliancedomain.RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compliancedomain.RiskLevelFor(tt.score), "score %d", tt.score)
	}
}

func TestCrossPeriodFindings_HighIncomeZeroTDS(t *testing.T) {
	t.Run("fires for projected income above floor", func(t *testing.T) {
		history := payroll.History{{EmployeeID: "EMP-1", Gross: d(120000)}}
		ec := newTestContext(employee.Employee{EmployeeID: "EMP-1"}, history, attendanceSummary())

		findings := crossPeriodFindings(ec)
		require.Len(t, findings, 1)
		assert.Equal(t, "annual_income_zero_tds", findings[0].RuleID)
		assert.Equal(t, compliancedomain.SeverityCritical, findings[0].Severity)
	})

	t.Run("any TDS on file suppresses it", func(t *testing.T) {
		history := payroll.History{
			{EmployeeID: "EMP-1", Gross: d(120000), TDS: d(9000)},
			{EmployeeID: "EMP-1", Gross: d(120000)},
		}
		ec := newTestContext(employee.Employee{EmployeeID: "EMP-1"}, history, attendanceSummary())
		assert.Empty(t, crossPeriodFindings(ec))
	})

	t.Run("income below floor is fine", func(t *testing.T) {
		history := payroll.History{{EmployeeID: "EMP-1", Gross: d(50000)}}
		ec := newTestContext(employee.Employee{EmployeeID: "EMP-1"}, history, attendanceSummary())
		assert.Empty(t, crossPeriodFindings(ec))
	})
}

func TestBuildSuggestions(t *testing.T) {
	reports := []compliancedomain.Report{{
		EmployeeID: "EMP-1",
		Violations: []compliancedomain.Violation{
			{RuleID: "pf_deduction_missing"},
			{RuleID: "pf_deduction_missing"}, // duplicate suggestion collapses
			{RuleID: "esi_deduction_missing"},
			{RuleID: "esi_exit_month_missing"}, // same suggestion as above
			{RuleID: "annual_income_zero_tds"},
			{RuleID: "salary_structure"},
			{RuleID: "pf_wage_mismatch"},
			{RuleID: "tds_expected_mismatch"},
		},
	}}

	suggestions := buildSuggestions(reports, nil)
	assert.Len(t, suggestions, 5)

	seen := make(map[string]bool)
	for _, s := range suggestions {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestBuildSuggestions_UnknownRulesIgnored(t *testing.T) {
	reports := []compliancedomain.Report{{
		Violations: []compliancedomain.Violation{{RuleID: "pt_slab_mismatch"}},
	}}
	assert.Empty(t, buildSuggestions(reports, nil))
}

package compliance

import (
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
)

// evaluateMinimumWage compares basic pay against the minimum-wage table,
// keyed by job role first and state second. No configured floor means
// the rule does not apply.
func evaluateMinimumWage(ec *evalContext) []compliancedomain.Violation {
	minimum, ok := ec.Rules.MinWageFor(ec.Employee.JobRole, ec.Employee.State)
	if !ok {
		return nil
	}

	basic := ec.basic()
	if basic.GreaterThanOrEqual(minimum) {
		return nil
	}

	role := ec.Employee.JobRole
	if role == "" {
		role = "role"
	}
	return []compliancedomain.Violation{{
		RuleID:         "minimum_wage_breach",
		Category:       compliancedomain.CategoryMinimumWage,
		Type:           "Minimum Wage Violation",
		Severity:       compliancedomain.SeverityHigh,
		Message:        fmt.Sprintf("Basic pay ₹%s is below minimum wage ₹%s for %s.", basic.StringFixed(0), minimum.StringFixed(0), role),
		RecommendedFix: "Update basic salary to meet the minimum wage requirement.",
	}}
}

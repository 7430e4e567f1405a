package compliance

import (
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

var (
	esiEmployeeRate = decimal.NewFromFloat(0.0075)
	esiEmployerRate = decimal.NewFromFloat(0.0325)

	esiEmployeeTolerance = decimal.NewFromInt(2)
	esiEmployerTolerance = decimal.NewFromInt(5)
)

// evaluateESI checks employee state insurance eligibility, contribution
// percentages, and the exit-month rule for employees who crossed the
// gross ceiling.
func evaluateESI(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	gross := ec.gross()
	ceiling := decimal.NewFromFloat(ec.Cfg.ESIGrossCeiling)
	eligible := gross.IsPositive() && gross.LessThanOrEqual(ceiling)

	if eligible && ec.Current.ESI.IsZero() {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "esi_deduction_missing",
			Category:       compliancedomain.CategoryESI,
			Type:           "ESI Deduction Missing",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "ESI-eligible employee has no ESI deduction this period.",
			RecommendedFix: "Enable ESI and apply statutory deductions for eligible wages.",
		})
	}

	if eligible && ec.Current.ESI.IsPositive() && !withinTolerance(ec.Current.ESI, gross.Mul(esiEmployeeRate), esiEmployeeTolerance) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "esi_employee_share_mismatch",
			Category:       compliancedomain.CategoryESI,
			Type:           "ESI Contribution Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Employee ESI contribution does not match 0.75% of gross wages.",
			RecommendedFix: "Update employee ESI deductions to 0.75% of gross wages.",
		})
	}

	if eligible && ec.Current.ESIEmployer.IsPositive() && !withinTolerance(ec.Current.ESIEmployer, gross.Mul(esiEmployerRate), esiEmployerTolerance) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "esi_employer_share_mismatch",
			Category:       compliancedomain.CategoryESI,
			Type:           "ESI Employer Contribution Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Employer ESI contribution does not match 3.25% of gross wages.",
			RecommendedFix: "Update employer ESI contributions to 3.25% of gross wages.",
		})
	}

	if gross.GreaterThan(ceiling) && ec.Employee.ESIApplicable && ec.Employee.ESIExitMonth != ec.MonthKey {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "esi_exit_month_missing",
			Category:       compliancedomain.CategoryESI,
			Type:           "ESI Exit Rule",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Employee crossed the ESI gross ceiling without an exit month recorded.",
			RecommendedFix: "Record the ESI exit month after crossing the gross wage ceiling.",
		})
	}

	return violations
}

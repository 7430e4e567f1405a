package compliance

import (
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

var (
	epfRate = decimal.NewFromFloat(0.12)
	epsRate = decimal.NewFromFloat(0.0833)
)

// evaluatePF checks provident-fund eligibility and contribution math.
// Each check is independent; all of them may fire for one record.
func evaluatePF(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	basic := ec.basic()
	da := ec.Current.DA
	pfWage := ec.Current.PFWage
	if pfWage.IsZero() {
		pfWage = basic.Add(da)
	}
	ceiling := decimal.NewFromFloat(ec.Cfg.PFWageCeiling)

	eligible := ec.Employee.PFApplicable || (basic.Add(da).IsPositive() && basic.Add(da).LessThanOrEqual(ceiling))

	if eligible && ec.Current.PF.IsZero() {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "pf_deduction_missing",
			Category:       compliancedomain.CategoryPF,
			Type:           "PF Deduction Missing",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "PF-eligible employee has no PF deduction this period.",
			RecommendedFix: "Enable PF for the employee and backfill missing deductions.",
		})
	}

	if pfWage.IsPositive() && !withinTolerance(pfWage, basic.Add(da), decimal.NewFromInt(1)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "pf_wage_mismatch",
			Category:       compliancedomain.CategoryPF,
			Type:           "PF Wage Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        fmt.Sprintf("PF wage should match Basic + DA (₹%s).", basic.Add(da).StringFixed(0)),
			RecommendedFix: "Align PF wage with Basic + DA in payroll settings.",
		})
	}

	expectedEPF := pfWage.Mul(epfRate)
	if pfWage.IsPositive() && ec.Current.PF.IsPositive() && !withinTolerance(ec.Current.PF, expectedEPF, scaledTolerance(expectedEPF)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "epf_contribution_mismatch",
			Category:       compliancedomain.CategoryPF,
			Type:           "EPF Contribution Mismatch",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "Employee EPF contribution does not match 12% of PF wage.",
			RecommendedFix: "Recalculate EPF contribution at 12% of PF wage.",
		})
	}

	epsCap := decimal.Min(pfWage, ceiling)
	expectedEPS := epsCap.Mul(epsRate)
	if ec.Current.EPS.IsPositive() && ec.Current.EPS.GreaterThan(expectedEPS.Add(scaledTolerance(expectedEPS))) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "eps_cap_exceeded",
			Category:       compliancedomain.CategoryPF,
			Type:           "EPS Cap Violation",
			Severity:       compliancedomain.SeverityMedium,
			Message:        fmt.Sprintf("EPS contribution exceeds the statutory cap based on the ₹%s wage ceiling.", ceiling.StringFixed(0)),
			RecommendedFix: "Cap EPS contributions at 8.33% of the wage ceiling or PF wage, whichever is lower.",
		})
	}

	employerTotal := ec.Current.EmployerEPF.Add(ec.Current.EmployerEPS)
	expectedEmployer := pfWage.Mul(epfRate)
	if pfWage.IsPositive() && employerTotal.IsPositive() && !withinTolerance(employerTotal, expectedEmployer, scaledTolerance(expectedEmployer)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "employer_pf_split_mismatch",
			Category:       compliancedomain.CategoryPF,
			Type:           "Employer PF Split Mismatch",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "Employer EPF + EPS total does not equal 12% of PF wage.",
			RecommendedFix: "Split employer PF contributions to total 12% of PF wage.",
		})
	}

	return violations
}

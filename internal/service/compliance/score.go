package compliance

import (
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

const (
	monthsPerYear  = 12
	maxSuggestions = 5
)

// scoreViolations sums severity points per category, caps each category,
// then caps the total. An empty list scores 0 and maps to Low.
func scoreViolations(violations []compliancedomain.Violation) (int, compliancedomain.RiskLevel) {
	byCategory := make(map[compliancedomain.Category]int)
	for _, v := range violations {
		byCategory[v.Category] += v.Severity.Points()
	}

	total := 0
	for _, points := range byCategory {
		if points > compliancedomain.MaxCategoryScore {
			points = compliancedomain.MaxCategoryScore
		}
		total += points
	}
	if total > compliancedomain.MaxTotalScore {
		total = compliancedomain.MaxTotalScore
	}
	return total, compliancedomain.RiskLevelFor(total)
}

// crossPeriodFindings holds the checks that need the whole payroll
// history rather than a single record. Currently one: a projected
// annual income above the configured floor with no TDS deducted in any
// period on file.
func crossPeriodFindings(ec *evalContext) []compliancedomain.Violation {
	if !ec.HasPayroll {
		return nil
	}

	projected := ec.Current.Gross.Mul(decimal.NewFromInt(monthsPerYear))
	if !projected.GreaterThan(decimal.NewFromFloat(ec.Cfg.AnnualIncomeTDSFloor)) {
		return nil
	}

	totalTDS := decimal.Zero
	for _, rec := range ec.History {
		totalTDS = totalTDS.Add(rec.TDS)
	}
	if totalTDS.IsPositive() {
		return nil
	}

	return []compliancedomain.Violation{{
		RuleID:         "annual_income_zero_tds",
		Category:       compliancedomain.CategoryTDS,
		Type:           "High Income Zero TDS",
		Severity:       compliancedomain.SeverityCritical,
		Message:        "Projected annual income exceeds the taxable floor with no TDS deducted in any period.",
		RecommendedFix: "Review tax declarations and start TDS deductions for this employee.",
	}}
}

// suggestionByRule maps fired rules to remediation suggestions. One
// suggestion can be triggered by several rules; duplicates collapse.
var suggestionByRule = map[string]string{
	"pf_deduction_missing":       "Deduct PF for eligible employees with Basic + DA at or below the wage ceiling.",
	"salary_structure":           "Review salary structures where basic pay falls below the expected share of gross.",
	"esi_deduction_missing":      "Check employees near the ESI gross ceiling for eligibility fluctuations.",
	"esi_exit_month_missing":     "Check employees near the ESI gross ceiling for eligibility fluctuations.",
	"annual_income_zero_tds":     "Review high-salary employees with zero TDS and verify their declarations.",
	"pf_wage_mismatch":           "Reconcile statutory contribution amounts with payroll settings.",
	"employer_pf_split_mismatch": "Reconcile statutory contribution amounts with payroll settings.",
	"epf_contribution_mismatch":  "Reconcile statutory contribution amounts with payroll settings.",
	"tds_expected_mismatch":      "Reconcile statutory contribution amounts with payroll settings.",
}

// buildSuggestions derives up to maxSuggestions deduplicated remediation
// suggestions from the fired violations, in report order.
func buildSuggestions(reports []compliancedomain.Report, unattributed []compliancedomain.Violation) []string {
	var suggestions []string
	seen := make(map[string]bool)

	add := func(v compliancedomain.Violation) {
		suggestion, ok := suggestionByRule[v.RuleID]
		if !ok || seen[suggestion] || len(suggestions) >= maxSuggestions {
			return
		}
		seen[suggestion] = true
		suggestions = append(suggestions, suggestion)
	}

	for _, report := range reports {
		for _, v := range report.Violations {
			add(v)
		}
	}
	for _, v := range unattributed {
		add(v)
	}
	return suggestions
}

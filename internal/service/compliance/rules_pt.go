package compliance

import (
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

var ptDoubleDeductionFactor = decimal.NewFromFloat(1.5)

// evaluatePT compares the professional-tax deduction against the
// configured slab for the employee's state. A state with no slab
// configuration is a rule-not-applicable case, not an error.
func evaluatePT(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	state := ec.Employee.State
	if state == "" {
		state = ec.Current.State
	}
	gross := ec.gross()
	pt := ec.Current.PT

	slab, ok := ec.Rules.SlabForGross(state, gross)
	if !ok {
		if pt.IsPositive() {
			name := state
			if name == "" {
				name = "state"
			}
			violations = append(violations, compliancedomain.Violation{
				RuleID:         "pt_deducted_without_slab",
				Category:       compliancedomain.CategoryPT,
				Type:           "PT Deduction Invalid State",
				Severity:       compliancedomain.SeverityMedium,
				Message:        fmt.Sprintf("PT deducted in %s where no PT slab is configured.", name),
				RecommendedFix: "Remove PT deduction or configure the correct state slab before deduction.",
			})
		}
		return violations
	}

	if slab.Amount.IsPositive() && pt.IsZero() {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "pt_deduction_missing",
			Category:       compliancedomain.CategoryPT,
			Type:           "PT Missing",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "PT deduction missing for applicable slab.",
			RecommendedFix: "Apply PT deduction according to the configured slab for the state.",
		})
	}

	if pt.IsPositive() && !pt.Equal(slab.Amount) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "pt_slab_mismatch",
			Category:       compliancedomain.CategoryPT,
			Type:           "PT Slab Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        fmt.Sprintf("PT deduction should be ₹%s for the current slab.", slab.Amount.StringFixed(0)),
			RecommendedFix: "Align PT deduction with the state slab for the current gross wage.",
		})
	}

	if slab.Amount.IsPositive() && pt.GreaterThan(slab.Amount.Mul(ptDoubleDeductionFactor)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "pt_double_deduction",
			Category:       compliancedomain.CategoryPT,
			Type:           "PT Deducted Twice",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "PT deduction appears to be applied more than once.",
			RecommendedFix: "Check payroll rules to prevent duplicate PT deductions.",
		})
	}

	return violations
}

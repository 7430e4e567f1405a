package compliance

import (
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/shopspring/decimal"
)

var (
	noPANMinRate         = decimal.NewFromFloat(0.2)
	tdsExpectedTolerance = decimal.NewFromInt(10)
	declarationProofGap  = decimal.NewFromInt(1000)
)

// evaluateTDS checks withholding-tax hygiene for the current record:
// the 20% no-PAN rate rule, regime consistency, expected-vs-actual
// deduction, declaration proofs, and duplicate PAN across employees.
// The annual-income projection check runs in the aggregation pass, not
// here, because it needs cross-period reasoning.
func evaluateTDS(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	gross := ec.gross()
	tds := ec.Current.TDS

	if ec.Employee.PAN == "" && gross.IsPositive() {
		rate := tds.Div(gross)
		if rate.LessThan(noPANMinRate) {
			violations = append(violations, compliancedomain.Violation{
				RuleID:         "tds_pan_missing",
				Category:       compliancedomain.CategoryTDS,
				Type:           "TDS PAN Rule",
				Severity:       compliancedomain.SeverityHigh,
				Message:        "PAN missing and TDS rate is below 20%.",
				RecommendedFix: "Collect PAN or apply 20% TDS on taxable income until PAN is provided.",
			})
		}
	}

	if ec.Population != nil && ec.Population.DuplicatePANs[ec.Employee.EmployeeID] {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "tds_duplicate_pan",
			Category:       compliancedomain.CategoryTDS,
			Type:           "Duplicate PAN",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "PAN is shared with at least one other employee.",
			RecommendedFix: "Verify the PAN against identity documents and correct the duplicate entry.",
		})
	}

	empRegime := ec.Employee.TaxRegime
	payRegime := ec.Current.TaxRegime
	if empRegime != "" && payRegime != "" && empRegime != payRegime {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "tds_regime_mismatch",
			Category:       compliancedomain.CategoryTDS,
			Type:           "TDS Regime Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        fmt.Sprintf("Payroll regime (%s) does not match employee declaration (%s).", payRegime, empRegime),
			RecommendedFix: "Align payroll tax regime with the employee declaration.",
		})
	}

	if ec.Current.TDSExpected.IsPositive() && !withinTolerance(tds, ec.Current.TDSExpected, tdsExpectedTolerance) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "tds_expected_mismatch",
			Category:       compliancedomain.CategoryTDS,
			Type:           "TDS Tax Mismatch",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Actual TDS deduction differs from expected tax calculation.",
			RecommendedFix: "Recompute TDS based on projected income and approved declarations.",
		})
	}

	declaration := ec.Employee.TDSDeclarationAmount
	proof := ec.Employee.TDSProofAmount
	if declaration.IsPositive() && proof.IsPositive() && declaration.Sub(proof).GreaterThan(declarationProofGap) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "tds_declaration_proof_gap",
			Category:       compliancedomain.CategoryTDS,
			Type:           "TDS Declaration/Proof Mismatch",
			Severity:       compliancedomain.SeverityLow,
			Message:        "Declared deductions exceed proofs submitted by a significant margin.",
			RecommendedFix: "Request updated proofs or adjust taxable income for unsupported declarations.",
		})
	}

	return violations
}

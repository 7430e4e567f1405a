package compliance

import (
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const baselineDepth = 3

var (
	reimbursementSpikeFactor = decimal.NewFromFloat(1.5)
	deductionDropFactor      = decimal.NewFromFloat(0.5)
)

// evaluateSalaryAnomaly compares the current record against a rolling
// baseline of up to three preceding records. A first-ever payroll
// record has no baseline, so only the structure check can fire.
func evaluateSalaryAnomaly(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	if !ec.HasPayroll {
		return nil
	}
	baseline := ec.History.Baseline(baselineDepth)

	avgGross := baselineAverage(baseline, func(r payroll.Record) decimal.Decimal { return r.Gross })
	if avgGross.IsPositive() && ec.Current.Gross.GreaterThan(avgGross.Mul(decimal.NewFromFloat(ec.Cfg.SpikeMultiplier))) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "salary_spike",
			Category:       compliancedomain.CategorySalary,
			Type:           "Salary Spike",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "Gross salary spiked sharply compared to the recent average.",
			RecommendedFix: "Validate incentives, bonuses, or adjustments before releasing payroll.",
		})
	}

	avgReimbursement := baselineAverage(baseline, func(r payroll.Record) decimal.Decimal { return r.Reimbursement })
	if avgReimbursement.IsPositive() && ec.Current.Reimbursement.GreaterThan(avgReimbursement.Mul(reimbursementSpikeFactor)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "reimbursement_spike",
			Category:       compliancedomain.CategorySalary,
			Type:           "Reimbursement Spike",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Reimbursements spiked significantly compared to recent history.",
			RecommendedFix: "Review reimbursement claims and approvals for this cycle.",
		})
	}

	avgDeductions := baselineAverage(baseline, func(r payroll.Record) decimal.Decimal { return r.Deductions })
	if avgDeductions.IsPositive() && ec.Current.Deductions.LessThan(avgDeductions.Mul(deductionDropFactor)) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "deduction_drop",
			Category:       compliancedomain.CategorySalary,
			Type:           "Deduction Drop Anomaly",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Total deductions dropped sharply compared to recent periods.",
			RecommendedFix: "Check deductions for missed statutory or voluntary items.",
		})
	}

	gross := ec.Current.Gross
	basic := ec.Current.Basic
	if gross.IsPositive() && basic.IsPositive() && basic.LessThan(gross.Mul(decimal.NewFromFloat(ec.Cfg.BasicShareFloor))) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "salary_structure",
			Category:       compliancedomain.CategorySalary,
			Type:           "Salary Structure Anomaly",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Basic pay is below the expected share of gross salary.",
			RecommendedFix: "Rebalance the salary structure so basic pay meets the configured share of gross.",
		})
	}

	return violations
}

func baselineAverage(baseline []payroll.Record, field func(payroll.Record) decimal.Decimal) decimal.Decimal {
	if len(baseline) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, rec := range baseline {
		sum = sum.Add(field(rec))
	}
	return sum.Div(decimal.NewFromInt(int64(len(baseline))))
}

package compliance

import (
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
)

// evaluateOvertime applies the daily cap and the two monthly tiers. The
// warn tier fires only when the hard limit has not already been crossed.
func evaluateOvertime(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	for _, day := range ec.Summary.Daily {
		if day.OvertimeHours > ec.Cfg.OvertimeDailyLimit {
			violations = append(violations, compliancedomain.Violation{
				RuleID:         "overtime_daily_limit",
				Category:       compliancedomain.CategoryOvertime,
				Type:           "Daily Overtime Limit",
				Severity:       compliancedomain.SeverityMedium,
				Message:        fmt.Sprintf("Overtime exceeds %g hours on one or more days.", ec.Cfg.OvertimeDailyLimit),
				RecommendedFix: "Cap daily overtime and adjust staffing schedules.",
			})
			break
		}
	}

	total := ec.Summary.OvertimeHours
	switch {
	case total > ec.Cfg.OvertimeMonthlyMax:
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "overtime_monthly_limit",
			Category:       compliancedomain.CategoryOvertime,
			Type:           "Monthly Overtime Limit",
			Severity:       compliancedomain.SeverityHigh,
			Message:        fmt.Sprintf("Overtime reached %g hours this month, exceeding the %g-hour limit.", total, ec.Cfg.OvertimeMonthlyMax),
			RecommendedFix: "Review workload distribution to reduce total overtime hours.",
		})
	case total > ec.Cfg.OvertimeMonthlyWarn:
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "overtime_monthly_warning",
			Category:       compliancedomain.CategoryOvertime,
			Type:           "Monthly Overtime Warning",
			Severity:       compliancedomain.SeverityMedium,
			Message:        fmt.Sprintf("Overtime reached %g hours this month, approaching the %g-hour limit.", total, ec.Cfg.OvertimeMonthlyMax),
			RecommendedFix: "Monitor overtime allocation before the monthly limit is breached.",
		})
	}

	return violations
}

package compliance

import (
	"fmt"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var netSwingLimit = decimal.NewFromFloat(0.25)

// anomalyInput is everything the data-integrity sweep reads. The sweep
// runs over raw and normalized data side by side: raw records expose
// structural defects the normalizer papers over.
type anomalyInput struct {
	RawEmployees []employee.RawRecord
	Employees    map[string]employee.Employee
	Days         []attendance.RawDay
	Summaries    map[string]attendance.Summary
	Histories    map[string]payroll.History
}

// detectAnomalies is the data-integrity sweep: structural defects in the
// source data, independent of statutory rules and not gated by
// eligibility flags. Findings that cannot be tied to a known employee
// are returned separately.
func detectAnomalies(in anomalyInput) (map[string][]compliancedomain.Violation, []compliancedomain.Violation) {
	perEmployee := make(map[string][]compliancedomain.Violation)
	var unattributed []compliancedomain.Violation

	attach := func(employeeID string, v compliancedomain.Violation) {
		if employeeID != "" {
			if _, known := in.Employees[employeeID]; known {
				perEmployee[employeeID] = append(perEmployee[employeeID], v)
				return
			}
		}
		unattributed = append(unattributed, v)
	}

	for _, raw := range in.RawEmployees {
		id := toString(pick(raw, employeeFieldCandidates["employeeId"]...))
		if id != "" && validator.IsValidEmployeeID(id) {
			continue
		}
		attach(validator.SanitizeEmployeeID(id), compliancedomain.Violation{
			RuleID:         "invalid_employee_id",
			Category:       compliancedomain.CategoryDataIntegrity,
			Type:           "Invalid Employee ID",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Invalid or missing employee ID detected in the employee directory.",
			RecommendedFix: "Review the employee record and assign a well-formed identifier.",
		})
	}

	sameDay := make(map[string]int)
	for _, day := range in.Days {
		rec := normalizeDay(day)

		if day.Payload == nil || rec.Status == "" {
			attach(rec.EmployeeID, compliancedomain.Violation{
				RuleID:         "malformed_attendance_entry",
				Category:       compliancedomain.CategoryDataIntegrity,
				Type:           "Malformed Attendance Entry",
				Severity:       compliancedomain.SeverityMedium,
				Message:        fmt.Sprintf("Attendance entry on %s is malformed or missing expected fields.", day.Date),
				RecommendedFix: "Re-save the attendance entry with a valid status.",
			})
		}

		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfday:
			if rec.CheckInTime == nil {
				attach(rec.EmployeeID, compliancedomain.Violation{
					RuleID:         "present_without_punch",
					Category:       compliancedomain.CategoryDataIntegrity,
					Type:           "Present Without Punch Time",
					Severity:       compliancedomain.SeverityMedium,
					Message:        fmt.Sprintf("Employee marked present on %s without a punch-in time.", day.Date),
					RecommendedFix: "Record the check-in time or correct the attendance status.",
				})
			}
		}

		if rec.EmployeeID != "" {
			key := day.Date + "|" + rec.EmployeeID
			sameDay[key]++
			if sameDay[key] == 2 {
				attach(rec.EmployeeID, compliancedomain.Violation{
					RuleID:         "duplicate_attendance_entry",
					Category:       compliancedomain.CategoryDataIntegrity,
					Type:           "Duplicate Attendance Entry",
					Severity:       compliancedomain.SeverityMedium,
					Message:        fmt.Sprintf("Duplicate attendance entries detected on %s.", day.Date),
					RecommendedFix: "Remove the duplicate attendance entry for the day.",
				})
			}
		}
	}

	for _, id := range sortedEmployeeIDs(in.Histories) {
		history := in.Histories[id]
		current, ok := history.Current()
		if !ok {
			continue
		}

		if _, hasAttendance := in.Summaries[id]; !hasAttendance {
			attach(id, compliancedomain.Violation{
				RuleID:         "payroll_without_attendance",
				Category:       compliancedomain.CategoryDataIntegrity,
				Type:           "Missing Attendance",
				Severity:       compliancedomain.SeverityLow,
				Message:        "Employee processed in payroll but has zero attendance records for the period.",
				RecommendedFix: "Backfill attendance or confirm the employee should be excluded from payroll.",
			})
		}

		if current.Net.IsNegative() {
			attach(id, compliancedomain.Violation{
				RuleID:         "negative_net_salary",
				Category:       compliancedomain.CategoryDataIntegrity,
				Type:           "Negative Net Salary",
				Severity:       compliancedomain.SeverityHigh,
				Message:        "Net salary is negative. Earnings and deduction inputs need review.",
				RecommendedFix: "Review earning and deduction inputs for the period.",
			})
		}

		earnings := current.Basic.Add(current.Allowances)
		if earnings.IsPositive() && current.Deductions.GreaterThan(earnings) {
			attach(id, compliancedomain.Violation{
				RuleID:         "deductions_exceed_earnings",
				Category:       compliancedomain.CategoryDataIntegrity,
				Type:           "Deductions Exceed Earnings",
				Severity:       compliancedomain.SeverityHigh,
				Message:        "Deductions exceed total earnings for the period.",
				RecommendedFix: "Verify deduction inputs against the earnings for the period.",
			})
		}

		for i := 1; i < len(history); i++ {
			prevNet := history[i-1].Net
			if !prevNet.IsPositive() {
				continue
			}
			delta := history[i].Net.Sub(prevNet).Div(prevNet)
			if delta.Abs().GreaterThan(netSwingLimit) {
				attach(id, compliancedomain.Violation{
					RuleID:         "net_salary_swing",
					Category:       compliancedomain.CategoryDataIntegrity,
					Type:           "Net Salary Swing",
					Severity:       compliancedomain.SeverityMedium,
					Message:        fmt.Sprintf("Net salary changed by %s%% compared to the previous month.", delta.Mul(decimal.NewFromInt(100)).StringFixed(1)),
					RecommendedFix: "Confirm the salary change is intentional and documented.",
				})
			}
		}

		if summary, ok := in.Summaries[id]; ok && summary.LeaveDays > 0 && !current.Deductions.IsPositive() {
			attach(id, compliancedomain.Violation{
				RuleID:         "leave_without_deduction",
				Category:       compliancedomain.CategoryDataIntegrity,
				Type:           "Leave Without Deduction",
				Severity:       compliancedomain.SeverityMedium,
				Message:        fmt.Sprintf("Leave recorded (%d days) but payroll deductions were not applied.", summary.LeaveDays),
				RecommendedFix: "Apply leave deductions or confirm the leave is paid.",
			})
		}
	}

	return perEmployee, unattributed
}

func sortedEmployeeIDs(histories map[string]payroll.History) []string {
	set := make(map[string]struct{}, len(histories))
	for id := range histories {
		set[id] = struct{}{}
	}
	return sortedKeys(set)
}

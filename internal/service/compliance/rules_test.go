package compliance

import (
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/config"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	"github.com/shopspring/decimal"
)

// Shared fixtures for the rule evaluator tests.

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		PFWageCeiling:        15000,
		ESIGrossCeiling:      21000,
		AnnualIncomeTDSFloor: 1000000,
		SpikeMultiplier:      1.3,
		BasicShareFloor:      0.35,
		OvertimeDailyLimit:   2,
		OvertimeMonthlyWarn:  40,
		OvertimeMonthlyMax:   50,
		DebounceDelay:        time.Millisecond,
	}
}

func newTestContext(emp employee.Employee, history payroll.History, summary attendance.Summary) *evalContext {
	ec := &evalContext{
		MonthKey: "2026-08",
		Employee: emp,
		History:  history,
		Summary:  summary,
		Rules:    staterules.DefaultRules(),
		Cfg:      testEngineConfig(),
		Population: &population{
			DeviceUsage:   map[string]int{},
			IPUsage:       map[string]int{},
			DuplicatePANs: map[string]bool{},
		},
	}
	ec.Current, ec.HasPayroll = history.Current()
	return ec
}

func attendanceSummary() attendance.Summary {
	return attendance.Summary{}
}

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func findByRule(violations []compliancedomain.Violation, ruleID string) []compliancedomain.Violation {
	var found []compliancedomain.Violation
	for _, v := range violations {
		if v.RuleID == ruleID {
			found = append(found, v)
		}
	}
	return found
}

func tp(t time.Time) *time.Time {
	return &t
}

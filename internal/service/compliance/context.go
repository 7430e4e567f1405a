package compliance

import (
	"log/slog"

	"github.com/cmlabs-hris/compliance-risk-go/internal/config"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	"github.com/shopspring/decimal"
)

// evalContext is the per-employee slice of a scan: everything a rule
// evaluator may read, nothing it may write. Constructed fresh per scan;
// no state survives between runs.
type evalContext struct {
	MonthKey   string
	Employee   employee.Employee
	Current    payroll.Record
	HasPayroll bool
	History    payroll.History
	Summary    attendance.Summary
	Rules      staterules.Rules
	Cfg        config.EngineConfig
	Population *population
}

// population holds cross-employee facts computed in a single pre-pass:
// how many distinct employees used each device and IP, and which
// employees share a PAN.
type population struct {
	DeviceUsage   map[string]int
	IPUsage       map[string]int
	DuplicatePANs map[string]bool
}

func buildPopulation(employees []employee.Employee, summaries map[string]attendance.Summary) *population {
	pop := &population{
		DeviceUsage:   make(map[string]int),
		IPUsage:       make(map[string]int),
		DuplicatePANs: make(map[string]bool),
	}

	for _, summary := range summaries {
		for _, device := range summary.Devices {
			pop.DeviceUsage[device]++
		}
		for _, ip := range summary.IPAddresses {
			pop.IPUsage[ip]++
		}
	}

	panOwners := make(map[string]string)
	for _, emp := range employees {
		if emp.PAN == "" {
			continue
		}
		if owner, seen := panOwners[emp.PAN]; seen {
			pop.DuplicatePANs[emp.EmployeeID] = true
			pop.DuplicatePANs[owner] = true
		} else {
			panOwners[emp.PAN] = emp.EmployeeID
		}
	}
	return pop
}

// basic resolves basic pay from the current payroll record, falling
// back to the employee master.
func (ec *evalContext) basic() decimal.Decimal {
	if ec.Current.Basic.IsPositive() {
		return ec.Current.Basic
	}
	return ec.Employee.BasicSalary
}

// gross resolves gross pay from the current payroll record, falling
// back to the employee master basic.
func (ec *evalContext) gross() decimal.Decimal {
	if ec.Current.Gross.IsPositive() {
		return ec.Current.Gross
	}
	return ec.Employee.BasicSalary
}

// ruleFunc is one independent rule evaluator. Evaluators are pure:
// same slice in, same violations out, in a stable order.
type ruleFunc struct {
	name string
	fn   func(ec *evalContext) []compliancedomain.Violation
}

// ruleSet is the fixed evaluation order. Rules are independent;
// ordering only pins report determinism.
var ruleSet = []ruleFunc{
	{"pf", evaluatePF},
	{"esi", evaluateESI},
	{"pt", evaluatePT},
	{"tds", evaluateTDS},
	{"minimum_wage", evaluateMinimumWage},
	{"overtime", evaluateOvertime},
	{"attendance_fraud", evaluateAttendanceFraud},
	{"salary_anomaly", evaluateSalaryAnomaly},
}

// evaluateAll runs every rule for one employee. A panicking evaluator
// is converted into a zero-violation result plus a diagnostic log so a
// single dirty record can never abort the scan.
func evaluateAll(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation
	for _, rule := range ruleSet {
		violations = append(violations, safeEvaluate(rule, ec)...)
	}
	return violations
}

func safeEvaluate(rule ruleFunc, ec *evalContext) (violations []compliancedomain.Violation) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Rule evaluator panicked",
				"rule", rule.name,
				"employee_id", ec.Employee.EmployeeID,
				"panic", r,
			)
			violations = nil
		}
	}()
	return rule.fn(ec)
}

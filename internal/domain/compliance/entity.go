package compliance

import "time"

// Severity of a single violation. One fixed taxonomy is used across
// every rule family; points per severity are a policy constant.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Points returns the risk score contribution of the severity.
// Low=10, Medium=15, High=25, Critical=30.
func (s Severity) Points() int {
	switch s {
	case SeverityLow:
		return 10
	case SeverityMedium:
		return 15
	case SeverityHigh:
		return 25
	case SeverityCritical:
		return 30
	default:
		return 0
	}
}

// Category groups violations for per-category score capping.
type Category string

const (
	CategoryPF            Category = "PF"
	CategoryESI           Category = "ESI"
	CategoryPT            Category = "PT"
	CategoryTDS           Category = "TDS"
	CategoryMinimumWage   Category = "Minimum Wage"
	CategoryOvertime      Category = "Overtime"
	CategoryAttendance    Category = "Attendance"
	CategorySalary        Category = "Salary"
	CategoryDataIntegrity Category = "Data Integrity"
)

// Score caps. A single category can contribute at most MaxCategoryScore
// points; the employee total is capped at MaxTotalScore.
const (
	MaxCategoryScore = 40
	MaxTotalScore    = 100
)

// RiskLevel is a step function of the total score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskLevelFor maps a capped score to its discrete level:
// <=20 Low, <=50 Medium, <=75 High, above Critical.
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score <= 20:
		return RiskLow
	case score <= 50:
		return RiskMedium
	case score <= 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Violation is a single finding. Violations are produced fresh on every
// evaluation and never mutated in place.
type Violation struct {
	RuleID         string   `json:"rule_id,omitempty"`
	Category       Category `json:"category"`
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	RecommendedFix string   `json:"recommended_fix"`
}

// Report is the per-employee scan output. A new scan supersedes the
// previous report for the same month wholesale.
type Report struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	RiskScore    int         `json:"risk_score"`
	RiskLevel    RiskLevel   `json:"risk_level"`
	Violations   []Violation `json:"violations"`
	GeneratedAt  time.Time   `json:"generated_at"`
}

// ReportSummary is the per-employee summary handed to persistence and
// notification collaborators.
type ReportSummary struct {
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	ViolationCount int       `json:"violation_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Summary derives the summary view of a report.
func (r Report) Summary() ReportSummary {
	return ReportSummary{
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		RiskScore:      r.RiskScore,
		RiskLevel:      r.RiskLevel,
		ViolationCount: len(r.Violations),
		GeneratedAt:    r.GeneratedAt,
	}
}

// ScanResult is the full output of one engine run.
type ScanResult struct {
	RunID          string      `json:"run_id"`
	MonthKey       string      `json:"month_key"`
	EmployeeCount  int         `json:"employee_count"`
	ViolationCount int         `json:"violation_count"`
	Reports        []Report    `json:"reports"`
	Unattributed   []Violation `json:"unattributed,omitempty"`
	Suggestions    []string    `json:"suggestions,omitempty"`
	CompletedAt    time.Time   `json:"completed_at"`
}

// ScanSummary is the persisted scan metadata row.
type ScanSummary struct {
	RunID          string    `json:"run_id"`
	MonthKey       string    `json:"month_key"`
	EmployeeCount  int       `json:"employee_count"`
	ViolationCount int       `json:"violation_count"`
	Suggestions    []string  `json:"suggestions,omitempty"`
	CompletedAt    time.Time `json:"completed_at"`
}

// HasSeverityAtLeast reports whether any report carries a violation at
// or above the given severity. Used for the HR alert broadcast.
func (s ScanResult) HasSeverityAtLeast(min Severity) bool {
	rank := map[Severity]int{SeverityLow: 0, SeverityMedium: 1, SeverityHigh: 2, SeverityCritical: 3}
	for _, report := range s.Reports {
		for _, v := range report.Violations {
			if rank[v.Severity] >= rank[min] {
				return true
			}
		}
	}
	return false
}

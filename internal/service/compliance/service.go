package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/config"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/sse"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/utils"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Service is the scan engine: it normalizes the month's datasets, runs
// the rule evaluators and the anomaly sweep per employee, aggregates
// scores, persists reports, and broadcasts completion events.
type Service struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	payrollRepo    payroll.PayrollRepository
	reportRepo     compliancedomain.ReportRepository
	resolver       compliancedomain.ScopeResolver
	rulesLoader    staterules.Loader
	hub            *sse.Hub
	cfg            config.EngineConfig
	now            func() time.Time
}

func NewComplianceService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	payrollRepo payroll.PayrollRepository,
	reportRepo compliancedomain.ReportRepository,
	resolver compliancedomain.ScopeResolver,
	rulesLoader staterules.Loader,
	hub *sse.Hub,
	cfg config.EngineConfig,
) *Service {
	return &Service{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		payrollRepo:    payrollRepo,
		reportRepo:     reportRepo,
		resolver:       resolver,
		rulesLoader:    rulesLoader,
		hub:            hub,
		cfg:            cfg,
		now:            time.Now,
	}
}

// RunScan evaluates every active employee for the resolved month and
// persists the results. Individual report write failures are logged and
// skipped; only scope resolution failure aborts the scan.
func (s *Service) RunScan(ctx context.Context, scope string) (compliancedomain.ScanResult, error) {
	monthKey, err := s.resolver.Resolve(ctx, scope)
	if err != nil {
		slog.Warn("Scan aborted: scope could not be resolved", "scope", scope, "error", err)
		return compliancedomain.ScanResult{}, fmt.Errorf("%w: %s", compliancedomain.ErrScanScopeUnresolved, scope)
	}

	started := s.now()
	slog.Info("Compliance scan started", "scope", scope, "month", monthKey)

	rules, err := s.rulesLoader.Load()
	if err != nil {
		return compliancedomain.ScanResult{}, fmt.Errorf("failed to load state rules: %w", err)
	}

	rawEmployees, err := s.employeeRepo.ListRaw(ctx)
	if err != nil {
		return compliancedomain.ScanResult{}, fmt.Errorf("failed to load employee records: %w", err)
	}
	rawDays, err := s.attendanceRepo.ListRawByMonth(ctx, monthKey)
	if err != nil {
		return compliancedomain.ScanResult{}, fmt.Errorf("failed to load attendance records: %w", err)
	}
	rawPayroll, err := s.payrollRepo.ListRawByMonth(ctx, monthKey)
	if err != nil {
		return compliancedomain.ScanResult{}, fmt.Errorf("failed to load payroll records: %w", err)
	}

	result := s.evaluate(monthKey, rules, rawEmployees, rawDays, rawPayroll)

	for _, report := range result.Reports {
		if err := s.reportRepo.SaveReport(ctx, monthKey, report); err != nil {
			slog.Error("Failed to persist employee report",
				"month", monthKey,
				"employee_id", report.EmployeeID,
				"error", err,
			)
		}
	}
	if err := s.reportRepo.SaveScan(ctx, compliancedomain.ScanSummary{
		RunID:          result.RunID,
		MonthKey:       result.MonthKey,
		EmployeeCount:  result.EmployeeCount,
		ViolationCount: result.ViolationCount,
		Suggestions:    result.Suggestions,
		CompletedAt:    result.CompletedAt,
	}); err != nil {
		slog.Error("Failed to persist scan metadata", "month", monthKey, "error", err)
	}

	s.broadcast(result)

	slog.Info("Compliance scan completed",
		"month", monthKey,
		"run_id", result.RunID,
		"employees", result.EmployeeCount,
		"violations", result.ViolationCount,
		"duration", s.now().Sub(started).String(),
	)
	return result, nil
}

// evaluate is the pure core of a scan: no I/O, deterministic for a
// given snapshot except for the run id and timestamp.
func (s *Service) evaluate(
	monthKey string,
	rules staterules.Rules,
	rawEmployees []employee.RawRecord,
	rawDays []attendance.RawDay,
	rawPayroll []payroll.RawRecord,
) compliancedomain.ScanResult {
	norm := newNormalizer(rawEmployees, rawPayroll)
	summaries := buildSummaries(rawDays, monthKey)
	histories := norm.Histories(rawPayroll)

	monthStart, monthEnd, boundsOK := utils.MonthBounds(monthKey)

	var employees []employee.Employee
	byID := make(map[string]employee.Employee)
	for _, raw := range rawEmployees {
		emp, ok := norm.Employee(raw)
		if !ok {
			continue
		}
		if boundsOK && !emp.ActiveInMonth(monthStart, monthEnd) {
			continue
		}
		if _, dup := byID[emp.EmployeeID]; dup {
			continue
		}
		employees = append(employees, emp)
		byID[emp.EmployeeID] = emp
	}

	pop := buildPopulation(employees, summaries)
	anomalies, unattributed := detectAnomalies(anomalyInput{
		RawEmployees: rawEmployees,
		Employees:    byID,
		Days:         rawDays,
		Summaries:    summaries,
		Histories:    histories,
	})

	generatedAt := s.now().UTC()
	reports := make([]compliancedomain.Report, 0, len(employees))
	totalViolations := 0

	for _, emp := range employees {
		ec := &evalContext{
			MonthKey:   monthKey,
			Employee:   emp,
			History:    histories[emp.EmployeeID],
			Summary:    summaries[emp.EmployeeID],
			Rules:      rules,
			Cfg:        s.cfg,
			Population: pop,
		}
		ec.Current, ec.HasPayroll = ec.History.Current()

		violations := evaluateAll(ec)
		violations = append(violations, crossPeriodFindings(ec)...)
		violations = append(violations, anomalies[emp.EmployeeID]...)

		score, level := scoreViolations(violations)
		reports = append(reports, compliancedomain.Report{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.Name,
			RiskScore:    score,
			RiskLevel:    level,
			Violations:   violations,
			GeneratedAt:  generatedAt,
		})
		totalViolations += len(violations)
	}
	totalViolations += len(unattributed)

	result := compliancedomain.ScanResult{
		RunID:          uuid.New().String(),
		MonthKey:       monthKey,
		EmployeeCount:  len(reports),
		ViolationCount: totalViolations,
		Reports:        reports,
		Unattributed:   unattributed,
		CompletedAt:    generatedAt,
	}
	result.Suggestions = buildSuggestions(reports, unattributed)
	return result
}

// broadcast publishes the completion event, plus an HR alert when the
// scan surfaced High or Critical findings.
func (s *Service) broadcast(result compliancedomain.ScanResult) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(sse.Event{
		Event: sse.EventScanCompleted,
		Data: map[string]any{
			"run_id":          result.RunID,
			"month_key":       result.MonthKey,
			"employee_count":  result.EmployeeCount,
			"violation_count": result.ViolationCount,
			"completed_at":    result.CompletedAt,
		},
	})

	if result.HasSeverityAtLeast(compliancedomain.SeverityHigh) {
		s.hub.Publish(sse.Event{
			Event: sse.EventComplianceAlert,
			Data: map[string]any{
				"run_id":    result.RunID,
				"month_key": result.MonthKey,
				"message":   "High or critical compliance findings detected",
			},
		})
	}
}

// GetScan returns persisted scan metadata for a month.
func (s *Service) GetScan(ctx context.Context, monthKey string) (compliancedomain.ScanSummary, error) {
	if !validator.IsValidMonthKey(monthKey) {
		return compliancedomain.ScanSummary{}, compliancedomain.ErrScanNotFound
	}
	return s.reportRepo.GetScan(ctx, monthKey)
}

// ListReports returns the per-employee summaries for a month.
func (s *Service) ListReports(ctx context.Context, monthKey string) (compliancedomain.ListReportsResponse, error) {
	if !validator.IsValidMonthKey(monthKey) {
		return compliancedomain.ListReportsResponse{}, compliancedomain.ErrScanNotFound
	}
	reports, err := s.reportRepo.ListReports(ctx, monthKey)
	if err != nil {
		return compliancedomain.ListReportsResponse{}, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]compliancedomain.ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, report.Summary())
	}
	return compliancedomain.ListReportsResponse{MonthKey: monthKey, Reports: summaries}, nil
}

// GetReport returns one employee's full violation detail.
func (s *Service) GetReport(ctx context.Context, monthKey, employeeID string) (compliancedomain.Report, error) {
	if !validator.IsValidMonthKey(monthKey) || !validator.IsValidEmployeeID(employeeID) {
		return compliancedomain.Report{}, compliancedomain.ErrReportNotFound
	}
	return s.reportRepo.GetReport(ctx, monthKey, employeeID)
}

package compliance

import "context"

// ComplianceService runs scans and serves persisted results.
type ComplianceService interface {
	// RunScan resolves the scope to a month, evaluates every employee and
	// persists the resulting reports. It is safe to re-run against an
	// unchanged snapshot: output is deterministic and supersedes the
	// previous scan for the month wholesale.
	RunScan(ctx context.Context, scope string) (ScanResult, error)

	// GetScan returns the persisted scan metadata for a month.
	GetScan(ctx context.Context, monthKey string) (ScanSummary, error)

	// ListReports returns the per-employee summaries for a month.
	ListReports(ctx context.Context, monthKey string) (ListReportsResponse, error)

	// GetReport returns one employee's full violation detail for a month.
	GetReport(ctx context.Context, monthKey, employeeID string) (Report, error)
}

// ScopeResolver maps a scan scope (month key or payroll-run id) to a
// concrete YYYY-MM month. External collaborator boundary.
type ScopeResolver interface {
	Resolve(ctx context.Context, scope string) (string, error)
}

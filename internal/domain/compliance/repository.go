package compliance

import "context"

// ReportRepository persists scan output. Write failures for individual
// reports must not abort the scan; the service logs and continues.
type ReportRepository interface {
	// SaveReport upserts one employee's report for the month.
	SaveReport(ctx context.Context, monthKey string, report Report) error

	// SaveScan upserts the scan metadata row for the month and prunes
	// report rows superseded by this run.
	SaveScan(ctx context.Context, summary ScanSummary) error

	// GetScan returns the latest scan metadata for the month.
	GetScan(ctx context.Context, monthKey string) (ScanSummary, error)

	// ListReports returns all employee reports for the month, ordered by
	// employee id.
	ListReports(ctx context.Context, monthKey string) ([]Report, error)

	// GetReport returns a single employee report for the month.
	GetReport(ctx context.Context, monthKey, employeeID string) (Report, error)
}

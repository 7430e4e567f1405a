package payroll

import "context"

// PayrollRepository provides access to raw payroll run documents.
type PayrollRepository interface {
	// ListRawByMonth returns all payroll documents recorded for the given
	// YYYY-MM month plus every earlier month (history is needed for
	// baseline rules), ordered by month then insertion.
	ListRawByMonth(ctx context.Context, monthKey string) ([]RawRecord, error)

	// ResolveRunMonth maps a payroll-run identifier to its YYYY-MM month
	// key. Returns ErrRunNotFound when the id is unknown.
	ResolveRunMonth(ctx context.Context, runID string) (string, error)
}

package employee

import "context"

// EmployeeRepository provides access to the raw employee directory.
// The engine never writes employee records.
type EmployeeRepository interface {
	// ListRaw returns every employee document as stored, shape untouched.
	ListRaw(ctx context.Context) ([]RawRecord, error)
}

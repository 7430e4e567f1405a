package attendance

import "context"

// AttendanceRepository provides access to raw per-day attendance
// documents. The engine never writes attendance.
type AttendanceRepository interface {
	// ListRawByMonth returns all attendance documents whose date falls in
	// the given YYYY-MM month, ordered by date then employee id.
	ListRawByMonth(ctx context.Context, monthKey string) ([]RawDay, error)
}

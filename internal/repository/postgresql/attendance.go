package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a repository over raw per-day
// attendance documents.
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListRawByMonth(ctx context.Context, monthKey string) ([]attendance.RawDay, error) {
	q := GetQuerier(ctx, r.db)

	// Stable ordering keeps repeated scans over the same snapshot
	// byte-identical.
	query := `
		SELECT date, employee_id, payload
		FROM attendance_records
		WHERE date LIKE $1 || '-%'
		ORDER BY date, employee_id, id
	`

	rows, err := q.Query(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var days []attendance.RawDay
	for rows.Next() {
		var day attendance.RawDay
		var payload []byte
		if err := rows.Scan(&day.Date, &day.EmployeeID, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &day.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal attendance record: %w", err)
			}
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return days, nil
}

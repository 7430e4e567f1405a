package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

// NewPayrollRepository creates a repository over raw payroll run
// documents.
func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) ListRawByMonth(ctx context.Context, monthKey string) ([]payroll.RawRecord, error) {
	q := GetQuerier(ctx, r.db)

	// Earlier months are included because baseline rules need the
	// preceding records for each employee.
	query := `
		SELECT payload
		FROM payroll_records
		WHERE month_key <= $1
		ORDER BY month_key, id
	`

	rows, err := q.Query(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.RawRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}

		var record payroll.RawRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) ResolveRunMonth(ctx context.Context, runID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month_key
		FROM payroll_records
		WHERE run_id = $1
		LIMIT 1
	`

	var monthKey string
	err := q.QueryRow(ctx, query, runID).Scan(&monthKey)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", payroll.ErrRunNotFound
		}
		return "", fmt.Errorf("failed to resolve payroll run: %w", err)
	}

	return monthKey, nil
}

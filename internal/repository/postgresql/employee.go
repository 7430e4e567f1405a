package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a repository over the raw employee
// directory. Upstream documents are stored as-is in a JSONB column;
// the engine's normalizer owns all interpretation.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListRaw(ctx context.Context) ([]employee.RawRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM employee_records
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee records: %w", err)
	}
	defer rows.Close()

	var records []employee.RawRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan employee record: %w", err)
		}

		var record employee.RawRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employee record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee records: %w", err)
	}

	return records, nil
}

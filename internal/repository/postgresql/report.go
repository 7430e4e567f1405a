package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates the persistence layer for scan output.
// Reports are stored as JSONB, keyed by (month, employee); re-running
// a scan supersedes the previous rows wholesale.
func NewReportRepository(db *database.DB) compliance.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SaveReport(ctx context.Context, monthKey string, report compliance.Report) error {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO compliance_reports (month_key, employee_id, risk_score, risk_level, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (month_key, employee_id) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			risk_level = EXCLUDED.risk_level,
			payload = EXCLUDED.payload,
			generated_at = EXCLUDED.generated_at
	`

	_, err = q.Exec(ctx, query,
		monthKey,
		report.EmployeeID,
		report.RiskScore,
		string(report.RiskLevel),
		payload,
		report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

func (r *reportRepository) SaveScan(ctx context.Context, summary compliance.ScanSummary) error {
	suggestions, err := json.Marshal(summary.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	// Reports left over from a previous run (employees no longer in the
	// dataset) are pruned together with the metadata upsert, so the
	// month's rows always describe exactly one run.
	pruneQuery := `
		DELETE FROM compliance_reports
		WHERE month_key = $1 AND generated_at < $2
	`
	scanQuery := `
		INSERT INTO compliance_scans (month_key, run_id, employee_count, violation_count, suggestions, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (month_key) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			employee_count = EXCLUDED.employee_count,
			violation_count = EXCLUDED.violation_count,
			suggestions = EXCLUDED.suggestions,
			completed_at = EXCLUDED.completed_at
	`

	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, pruneQuery, summary.MonthKey, summary.CompletedAt); err != nil {
			return fmt.Errorf("failed to prune superseded reports: %w", err)
		}
		if _, err := tx.Exec(ctx, scanQuery,
			summary.MonthKey,
			summary.RunID,
			summary.EmployeeCount,
			summary.ViolationCount,
			suggestions,
			summary.CompletedAt,
		); err != nil {
			return fmt.Errorf("failed to save scan: %w", err)
		}
		return nil
	})
	return err
}

func (r *reportRepository) GetScan(ctx context.Context, monthKey string) (compliance.ScanSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month_key, run_id, employee_count, violation_count, suggestions, completed_at
		FROM compliance_scans
		WHERE month_key = $1
	`

	var summary compliance.ScanSummary
	var suggestions []byte
	err := q.QueryRow(ctx, query, monthKey).Scan(
		&summary.MonthKey,
		&summary.RunID,
		&summary.EmployeeCount,
		&summary.ViolationCount,
		&suggestions,
		&summary.CompletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compliance.ScanSummary{}, compliance.ErrScanNotFound
		}
		return compliance.ScanSummary{}, fmt.Errorf("failed to get scan: %w", err)
	}

	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &summary.Suggestions); err != nil {
			return compliance.ScanSummary{}, fmt.Errorf("failed to unmarshal suggestions: %w", err)
		}
	}

	return summary, nil
}

func (r *reportRepository) ListReports(ctx context.Context, monthKey string) ([]compliance.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM compliance_reports
		WHERE month_key = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []compliance.Report
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report compliance.Report
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) GetReport(ctx context.Context, monthKey, employeeID string) (compliance.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM compliance_reports
		WHERE month_key = $1 AND employee_id = $2
	`

	var payload []byte
	err := q.QueryRow(ctx, query, monthKey, employeeID).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compliance.Report{}, compliance.ErrReportNotFound
		}
		return compliance.Report{}, fmt.Errorf("failed to get report: %w", err)
	}

	var report compliance.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return compliance.Report{}, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return report, nil
}

package compliance

import (
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
)

// RunScanRequest triggers a scan. Scope is either a YYYY-MM month key
// or a payroll-run identifier resolvable by the scope resolver.
type RunScanRequest struct {
	Scope  string `json:"scope"`
	Reason string `json:"reason,omitempty"`
}

func (r *RunScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Scope) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "scope is required (month key or payroll run id)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScanAcceptedResponse is returned when a scan trigger is queued.
type ScanAcceptedResponse struct {
	Scope  string `json:"scope"`
	Reason string `json:"reason"`
	Status string `json:"status"`
}

// ListReportsResponse wraps per-employee summaries for one month.
type ListReportsResponse struct {
	MonthKey string          `json:"month_key"`
	Reports  []ReportSummary `json:"reports"`
}

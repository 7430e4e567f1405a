package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Compliance domain errors
	case errors.Is(err, compliance.ErrScanScopeUnresolved):
		ValidationError(w, map[string]string{"scope": "scope could not be resolved to a month"})
	case errors.Is(err, compliance.ErrScanNotFound):
		NotFound(w, "Scan not found for the requested month")
	case errors.Is(err, compliance.ErrReportNotFound):
		NotFound(w, "Report not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

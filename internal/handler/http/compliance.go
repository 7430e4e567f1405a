package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// Triggerer queues a scan behind the single-flight coordinator.
type Triggerer interface {
	Trigger(scope, reason string)
}

type ComplianceHandler interface {
	// TriggerScan queues a compliance scan
	TriggerScan(w http.ResponseWriter, r *http.Request)

	// GetScan returns scan metadata for a month
	GetScan(w http.ResponseWriter, r *http.Request)

	// ListReports returns per-employee report summaries for a month
	ListReports(w http.ResponseWriter, r *http.Request)

	// GetReport returns one employee's full report for a month
	GetReport(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	complianceService compliance.ComplianceService
	coordinator       Triggerer
}

func NewComplianceHandler(complianceService compliance.ComplianceService, coordinator Triggerer) ComplianceHandler {
	return &complianceHandlerImpl{
		complianceService: complianceService,
		coordinator:       coordinator,
	}
}

// TriggerScan handles POST /scans. The scan itself runs asynchronously
// behind the coordinator; the request returns as soon as it is queued.
func (h *complianceHandlerImpl) TriggerScan(w http.ResponseWriter, r *http.Request) {
	var req compliance.RunScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual"
	}
	h.coordinator.Trigger(req.Scope, reason)

	response.Accepted(w, "Scan queued", compliance.ScanAcceptedResponse{
		Scope:  req.Scope,
		Reason: reason,
		Status: "queued",
	})
}

// GetScan handles GET /scans/{month}
func (h *complianceHandlerImpl) GetScan(w http.ResponseWriter, r *http.Request) {
	monthKey := chi.URLParam(r, "month")

	summary, err := h.complianceService.GetScan(r.Context(), monthKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ListReports handles GET /reports/{month}
func (h *complianceHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	monthKey := chi.URLParam(r, "month")

	result, err := h.complianceService.ListReports(r.Context(), monthKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetReport handles GET /reports/{month}/{employeeID}
func (h *complianceHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	monthKey := chi.URLParam(r, "month")
	employeeID := chi.URLParam(r, "employeeID")

	report, err := h.complianceService.GetReport(r.Context(), monthKey, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

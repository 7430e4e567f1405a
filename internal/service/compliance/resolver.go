package compliance

import (
	"context"
	"fmt"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/utils"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/validator"
)

// scopeResolver maps a scan scope to a YYYY-MM month key. A month key
// passes through as-is; anything else is treated as a payroll-run id
// and looked up. An empty scope means the current month.
type scopeResolver struct {
	payrollRepo payroll.PayrollRepository
}

func NewScopeResolver(payrollRepo payroll.PayrollRepository) compliancedomain.ScopeResolver {
	return &scopeResolver{payrollRepo: payrollRepo}
}

func (r *scopeResolver) Resolve(ctx context.Context, scope string) (string, error) {
	if scope == "" {
		return utils.CurrentMonthKey(), nil
	}
	if validator.IsValidMonthKey(scope) {
		return scope, nil
	}

	monthKey, err := r.payrollRepo.ResolveRunMonth(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("failed to resolve payroll run %q: %w", scope, err)
	}
	if !validator.IsValidMonthKey(monthKey) {
		return "", fmt.Errorf("payroll run %q resolved to invalid month %q", scope, monthKey)
	}
	return monthKey, nil
}

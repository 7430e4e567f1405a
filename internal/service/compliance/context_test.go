package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeEvaluate_PanickingRuleRecovered(t *testing.T) {
	ec := newTestContext(employee.Employee{EmployeeID: "EMP-1"}, nil, attendanceSummary())

	dirty := ruleFunc{name: "dirty", fn: func(*evalContext) []compliancedomain.Violation {
		panic("unparsable record")
	}}

	assert.NotPanics(t, func() {
		assert.Nil(t, safeEvaluate(dirty, ec))
	})
}

func TestEvaluateAll_ContinuesPastPanickingRule(t *testing.T) {
	orig := ruleSet
	defer func() { ruleSet = orig }()

	ruleSet = []ruleFunc{
		{"dirty", func(*evalContext) []compliancedomain.Violation {
			panic("unparsable record")
		}},
		{"healthy", func(*evalContext) []compliancedomain.Violation {
			return []compliancedomain.Violation{{
				RuleID:   "healthy_check",
				Category: compliancedomain.CategoryPF,
				Severity: compliancedomain.SeverityLow,
			}}
		}},
	}

	ec := newTestContext(employee.Employee{EmployeeID: "EMP-1"}, nil, attendanceSummary())

	// One panicking evaluator contributes nothing; the rest still run.
	violations := evaluateAll(ec)
	require.Len(t, violations, 1)
	assert.Equal(t, "healthy_check", violations[0].RuleID)
}

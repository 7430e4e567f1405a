package compliance

import (
	"testing"

	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/employee"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/staterules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMinimumWage(t *testing.T) {
	rules := staterules.Rules{
		PTSlabs: map[string][]staterules.PTSlab{},
		MinWages: map[string]decimal.Decimal{
			"security guard":       decimal.NewFromInt(12000),
			"Maharashtra":          decimal.NewFromInt(11000),
			staterules.DefaultKey: decimal.NewFromInt(10000),
		},
	}

	tests := []struct {
		name      string
		role      string
		state     string
		basic     float64
		wantFires bool
	}{
		{"below role floor", "security guard", "Karnataka", 11000, true},
		{"at role floor", "security guard", "Karnataka", 12000, false},
		{"state floor when role unknown", "clerk", "Maharashtra", 10500, true},
		{"default floor fallback", "clerk", "Goa", 9000, true},
		{"above default floor", "clerk", "Goa", 10000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := employee.Employee{EmployeeID: "EMP-1", JobRole: tt.role, State: tt.state}
			history := payroll.History{{EmployeeID: "EMP-1", Basic: d(tt.basic)}}

			ec := newTestContext(emp, history, attendanceSummary())
			ec.Rules = rules

			violations := evaluateMinimumWage(ec)
			if tt.wantFires {
				require.Len(t, violations, 1)
				assert.Equal(t, compliancedomain.SeverityHigh, violations[0].Severity)
				assert.Equal(t, compliancedomain.CategoryMinimumWage, violations[0].Category)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestEvaluateMinimumWage_NoFloorConfigured(t *testing.T) {
	emp := employee.Employee{EmployeeID: "EMP-2", JobRole: "clerk"}
	history := payroll.History{{EmployeeID: "EMP-2", Basic: d(100)}}

	ec := newTestContext(emp, history, attendanceSummary())
	ec.Rules = staterules.Rules{
		PTSlabs:  map[string][]staterules.PTSlab{},
		MinWages: map[string]decimal.Decimal{},
	}

	assert.Empty(t, evaluateMinimumWage(ec))
}

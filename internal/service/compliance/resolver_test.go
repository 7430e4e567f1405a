package compliance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/payroll"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeResolver(t *testing.T) {
	resolver := NewScopeResolver(&fakePayrollRepo{runMonths: map[string]string{
		"run-42":  "2026-08",
		"run-bad": "not-a-month",
	}})

	t.Run("empty scope means current month", func(t *testing.T) {
		month, err := resolver.Resolve(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, utils.CurrentMonthKey(), month)
	})

	t.Run("month key passes through", func(t *testing.T) {
		month, err := resolver.Resolve(context.Background(), "2026-05")
		require.NoError(t, err)
		assert.Equal(t, "2026-05", month)
	})

	t.Run("run id resolves to its month", func(t *testing.T) {
		month, err := resolver.Resolve(context.Background(), "run-42")
		require.NoError(t, err)
		assert.Equal(t, "2026-08", month)
	})

	t.Run("unknown run id fails", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "run-99")
		assert.ErrorIs(t, err, payroll.ErrRunNotFound)
	})

	t.Run("run resolving to a bad month fails", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "run-bad")
		assert.Error(t, err)
	})
}

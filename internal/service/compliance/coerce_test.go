package compliance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want decimal.Decimal
	}{
		{"nil", nil, decimal.Zero},
		{"float", 1234.56, d(1234.56)},
		{"int", 15000, d(15000)},
		{"numeric string", "21000.50", d(21000.50)},
		{"string with thousands separators", "1,00,000", d(100000)},
		{"padded string", "  500 ", d(500)},
		{"empty string", "", decimal.Zero},
		{"garbage string", "N/A", decimal.Zero},
		{"json number", json.Number("1800"), d(1800)},
		{"bool degrades to zero", true, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, toDecimal(tt.in).Equal(tt.want), "got %s", toDecimal(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"YES", true},
		{"y", true},
		{"1", true},
		{"no", false},
		{"", false},
		{float64(1), true},
		{float64(0), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toBool(tt.in), "input %v", tt.in)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "EMP-1", toString("  EMP-1 "))
	assert.Equal(t, "42", toString(float64(42)))
	assert.Equal(t, "true", toString(true))
	assert.Equal(t, "", toString(nil))
	assert.Equal(t, "", toString(map[string]any{}))
}

func TestToTime(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got := toTime("2026-08-03T09:00:00Z")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("date only", func(t *testing.T) {
		got := toTime("2026-08-03")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("epoch millis", func(t *testing.T) {
		ts := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
		got := toTime(float64(ts.UnixMilli()))
		require.NotNil(t, got)
		assert.True(t, got.Equal(ts))
	})

	t.Run("unparseable degrades to nil", func(t *testing.T) {
		assert.Nil(t, toTime("next tuesday"))
		assert.Nil(t, toTime(""))
		assert.Nil(t, toTime(nil))
		assert.Nil(t, toTime(float64(-5)))
	})
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, withinTolerance(d(1800.5), d(1800), d(1)))
	assert.True(t, withinTolerance(d(1799), d(1800), d(1)))
	assert.False(t, withinTolerance(d(1802), d(1800), d(1)))
}

func TestScaledTolerance(t *testing.T) {
	// Small amounts keep the flat band.
	assert.True(t, scaledTolerance(d(500)).Equal(d(1)))
	// 0.1% of 5,00,000 is 500.
	assert.True(t, scaledTolerance(d(500000)).Equal(d(500)))
}

func TestPick(t *testing.T) {
	rec := map[string]any{"empId": "EMP-1", "stale": nil}
	assert.Equal(t, "EMP-1", pick(rec, "employeeId", "empId"))
	assert.Nil(t, pick(rec, "stale"))
	assert.Nil(t, pick(rec, "missing"))
}

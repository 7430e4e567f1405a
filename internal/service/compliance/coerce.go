package compliance

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Lenient coercion: upstream data entry is uncontrolled, so every
// conversion here degrades to a zero value instead of failing. Rules
// must be able to run over the well-formed subset of any dataset.

func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d
		}
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
		if s == "" {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func toFloat(v any) float64 {
	f, _ := toDecimal(v).Float64()
	return f
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func toBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1":
			return true
		}
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

func toTime(v any) *time.Time {
	switch val := v.(type) {
	case time.Time:
		return &val
	case *time.Time:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	case float64:
		// epoch millis or seconds
		if val <= 0 {
			return nil
		}
		secs := int64(val)
		if val > 1e12 {
			secs = int64(val / 1000)
		}
		t := time.Unix(secs, 0).UTC()
		return &t
	}
	return nil
}

// pick returns the first non-nil value among the candidate keys.
func pick(rec map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// withinTolerance reports whether actual is within +/- tolerance of
// expected. Tolerances absorb rounding noise from upstream payroll
// arithmetic; zero-tolerance comparison drowns the report in false
// positives.
func withinTolerance(actual, expected, tolerance decimal.Decimal) bool {
	return actual.Sub(expected).Abs().LessThanOrEqual(tolerance)
}

// scaledTolerance widens the default +/-1 band to 0.1% of the expected
// amount for larger derived sums.
func scaledTolerance(expected decimal.Decimal) decimal.Decimal {
	tol := decimal.NewFromInt(1)
	if scaled := expected.Abs().Mul(decimal.NewFromFloat(0.001)); scaled.GreaterThan(tol) {
		return scaled
	}
	return tol
}

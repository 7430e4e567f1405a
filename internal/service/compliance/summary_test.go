package compliance

import (
	"testing"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawDay(date, employeeID string, payload map[string]any) attendance.RawDay {
	return attendance.RawDay{Date: date, EmployeeID: employeeID, Payload: payload}
}

func TestBuildSummaries_StatusCounting(t *testing.T) {
	days := []attendance.RawDay{
		rawDay("2026-08-03", "EMP-1", map[string]any{"status": "present"}),
		rawDay("2026-08-04", "EMP-1", map[string]any{"status": "LATE"}),
		rawDay("2026-08-05", "EMP-1", map[string]any{"status": "halfday"}),
		rawDay("2026-08-06", "EMP-1", map[string]any{"status": "leave"}),
		rawDay("2026-08-07", "EMP-1", map[string]any{"status": "absent"}),
		rawDay("2026-08-03", "EMP-2", map[string]any{"status": "present", "overtimeHours": 2.5}),
		rawDay("2026-08-04", "EMP-2", map[string]any{"status": "present", "otHours": 1.5}),
	}

	summaries := buildSummaries(days, "2026-08")
	require.Len(t, summaries, 2)

	s1 := summaries["EMP-1"]
	assert.Equal(t, 5, s1.TotalDays)
	assert.Equal(t, 3, s1.PresentDays)
	assert.Equal(t, 1, s1.LeaveDays)
	require.Len(t, s1.Daily, 5)
	assert.Equal(t, "2026-08-03", s1.Daily[0].Date)

	s2 := summaries["EMP-2"]
	assert.Equal(t, 4.0, s2.OvertimeHours)
}

func TestBuildSummaries_MonthFilter(t *testing.T) {
	days := []attendance.RawDay{
		rawDay("2026-07-31", "EMP-1", map[string]any{"status": "present"}),
		rawDay("2026-08-01", "EMP-1", map[string]any{"status": "present"}),
	}

	summaries := buildSummaries(days, "2026-08")
	assert.Equal(t, 1, summaries["EMP-1"].TotalDays)
}

func TestBuildSummaries_SortedDeviceAndIPSets(t *testing.T) {
	days := []attendance.RawDay{
		rawDay("2026-08-03", "EMP-1", map[string]any{"status": "present", "deviceId": "dev-b", "ipAddress": "10.0.0.2"}),
		rawDay("2026-08-04", "EMP-1", map[string]any{"status": "present", "deviceId": "dev-a", "ipAddress": "10.0.0.1"}),
		rawDay("2026-08-05", "EMP-1", map[string]any{"status": "present", "deviceId": "dev-b", "ipAddress": "10.0.0.1"}),
	}

	summary := buildSummaries(days, "2026-08")["EMP-1"]
	assert.Equal(t, []string{"dev-a", "dev-b"}, summary.Devices)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, summary.IPAddresses)
}

func TestBuildSummaries_SkipsBlankEmployeeID(t *testing.T) {
	days := []attendance.RawDay{
		rawDay("2026-08-03", "  ", map[string]any{"status": "present"}),
	}
	assert.Empty(t, buildSummaries(days, "2026-08"))
}

func TestNormalizeDay(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		rec := normalizeDay(rawDay("2026-08-03", "EMP-1", map[string]any{
			"status":   "Present",
			"checkIn":  "2026-08-03T09:12:00Z",
			"device":   "dev-a",
			"ip":       "10.0.0.1",
			"location": map[string]any{"lat": 12.9716, "lng": 77.5946},
			"otHours":  1.5,
		}))

		assert.Equal(t, attendance.StatusPresent, rec.Status)
		assert.Equal(t, "dev-a", rec.DeviceID)
		assert.Equal(t, "10.0.0.1", rec.IPAddress)
		assert.Equal(t, 1.5, rec.OvertimeHours)
		require.NotNil(t, rec.CheckInTime)
		assert.True(t, rec.HasLocation)
		assert.Equal(t, 12.9716, rec.Latitude)
	})

	t.Run("nil payload degrades to zero record", func(t *testing.T) {
		rec := normalizeDay(rawDay("2026-08-03", "EMP-1", nil))
		assert.Equal(t, "EMP-1", rec.EmployeeID)
		assert.Empty(t, rec.Status)
		assert.Nil(t, rec.CheckInTime)
		assert.False(t, rec.HasLocation)
	})
}

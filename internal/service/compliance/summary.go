package compliance

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
)

// buildSummaries folds raw per-day attendance documents into one
// summary per employee for the month. Input order (date, then employee)
// is preserved in the daily lists so repeated runs over the same
// snapshot are identical.
func buildSummaries(days []attendance.RawDay, monthKey string) map[string]attendance.Summary {
	summaries := make(map[string]attendance.Summary)
	deviceSets := make(map[string]map[string]struct{})
	ipSets := make(map[string]map[string]struct{})

	for _, day := range days {
		if !strings.HasPrefix(day.Date, monthKey) {
			continue
		}
		rec := normalizeDay(day)
		if rec.EmployeeID == "" {
			continue
		}

		summary := summaries[rec.EmployeeID]
		summary.EmployeeID = rec.EmployeeID
		summary.TotalDays++
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfday:
			summary.PresentDays++
		case attendance.StatusLeave:
			summary.LeaveDays++
		}
		summary.OvertimeHours += rec.OvertimeHours
		summary.Daily = append(summary.Daily, rec)
		summaries[rec.EmployeeID] = summary

		if rec.DeviceID != "" {
			if deviceSets[rec.EmployeeID] == nil {
				deviceSets[rec.EmployeeID] = make(map[string]struct{})
			}
			deviceSets[rec.EmployeeID][rec.DeviceID] = struct{}{}
		}
		if rec.IPAddress != "" {
			if ipSets[rec.EmployeeID] == nil {
				ipSets[rec.EmployeeID] = make(map[string]struct{})
			}
			ipSets[rec.EmployeeID][rec.IPAddress] = struct{}{}
		}
	}

	for id, summary := range summaries {
		summary.Devices = sortedKeys(deviceSets[id])
		summary.IPAddresses = sortedKeys(ipSets[id])
		summaries[id] = summary
	}
	return summaries
}

// normalizeDay maps one raw attendance document to the canonical day
// record. Missing fields degrade to zero values.
func normalizeDay(day attendance.RawDay) attendance.DayRecord {
	rec := attendance.DayRecord{
		Date:       day.Date,
		EmployeeID: strings.TrimSpace(day.EmployeeID),
	}
	payload := day.Payload
	if payload == nil {
		return rec
	}

	rec.Status = strings.ToLower(toString(pick(payload, "status")))
	rec.OvertimeHours = toFloat(pick(payload, "overtimeHours", "otHours"))
	rec.DeviceID = toString(pick(payload, "deviceId", "device"))
	rec.IPAddress = toString(pick(payload, "ipAddress", "ip"))
	rec.CheckInTime = toTime(pick(payload, "checkInTime", "timestamp", "checkIn", "time"))

	if loc, ok := pick(payload, "location").(map[string]any); ok {
		lat := toFloat(pick(loc, "lat", "latitude"))
		lon := toFloat(pick(loc, "lng", "longitude", "lon"))
		if lat != 0 || lon != 0 {
			rec.Latitude = lat
			rec.Longitude = lon
			rec.HasLocation = true
		}
	}
	return rec
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

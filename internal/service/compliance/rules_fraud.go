package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/domain/attendance"
	compliancedomain "github.com/cmlabs-hris/compliance-risk-go/internal/domain/compliance"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/utils"
)

const (
	deviceCloningMin   = 3
	sharedDeviceMin    = 3
	sharedIPMin        = 5
	timestampReuseMin  = 3
	impossibleKm       = 300.0
	impossibleGap      = 2 * time.Hour
	perfectRunLength   = 5
	presentRateSuspect = 0.8
)

// evaluateAttendanceFraud runs the structural checks over the daily
// detail list plus the population-level device/IP sharing checks.
func evaluateAttendanceFraud(ec *evalContext) []compliancedomain.Violation {
	var violations []compliancedomain.Violation

	if len(ec.Summary.Devices) >= deviceCloningMin {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "attendance_device_cloning",
			Category:       compliancedomain.CategoryAttendance,
			Type:           "Attendance Device Cloning",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Multiple device IDs detected for a single employee.",
			RecommendedFix: "Verify biometric device assignments and block shared device usage.",
		})
	}

	if ec.Population != nil {
		// Devices and IPAddresses are sorted, so the first shared entry
		// is stable across runs.
		for _, device := range ec.Summary.Devices {
			if ec.Population.DeviceUsage[device] >= sharedDeviceMin {
				violations = append(violations, compliancedomain.Violation{
					RuleID:         "attendance_shared_device",
					Category:       compliancedomain.CategoryAttendance,
					Type:           "Shared Attendance Device",
					Severity:       compliancedomain.SeverityMedium,
					Message:        fmt.Sprintf("Device %s was used by %d or more distinct employees.", device, sharedDeviceMin),
					RecommendedFix: "Investigate shared device usage and re-enroll affected employees.",
				})
				break
			}
		}
		for _, ip := range ec.Summary.IPAddresses {
			if ec.Population.IPUsage[ip] >= sharedIPMin {
				violations = append(violations, compliancedomain.Violation{
					RuleID:         "attendance_shared_ip",
					Category:       compliancedomain.CategoryAttendance,
					Type:           "Shared IP Address",
					Severity:       compliancedomain.SeverityMedium,
					Message:        fmt.Sprintf("IP address %s was used by %d or more distinct employees.", ip, sharedIPMin),
					RecommendedFix: "Check for proxy check-ins from a shared network address.",
				})
				break
			}
		}
	}

	if hasRepeatedTimestamp(ec.Summary.Daily) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "attendance_timestamp_reuse",
			Category:       compliancedomain.CategoryAttendance,
			Type:           "Attendance Timestamp Reuse",
			Severity:       compliancedomain.SeverityMedium,
			Message:        "Identical timestamps repeated across multiple attendance records.",
			RecommendedFix: "Audit check-in devices for cloned timestamps or manual overrides.",
		})
	}

	sorted := sortedByTime(ec.Summary.Daily)

	if hasImpossibleTravel(sorted) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "attendance_impossible_travel",
			Category:       compliancedomain.CategoryAttendance,
			Type:           "Impossible Travel",
			Severity:       compliancedomain.SeverityHigh,
			Message:        "Check-ins show impossible travel between distant locations.",
			RecommendedFix: "Verify location data and confirm attendance authenticity.",
		})
	}

	if hasSuddenPerfectRun(sorted, ec.Summary) {
		violations = append(violations, compliancedomain.Violation{
			RuleID:         "attendance_sudden_perfect",
			Category:       compliancedomain.CategoryAttendance,
			Type:           "Sudden Perfect Attendance",
			Severity:       compliancedomain.SeverityLow,
			Message:        "Perfect attendance detected after an inconsistent attendance pattern.",
			RecommendedFix: "Validate attendance records and confirm updated scheduling patterns.",
		})
	}

	return violations
}

func hasRepeatedTimestamp(daily []attendance.DayRecord) bool {
	counts := make(map[int64]int)
	for _, day := range daily {
		if day.CheckInTime == nil {
			continue
		}
		counts[day.CheckInTime.Unix()]++
		if counts[day.CheckInTime.Unix()] >= timestampReuseMin {
			return true
		}
	}
	return false
}

// sortedByTime orders day records by check-in time, falling back to the
// calendar date. Epoch zero sorts first, matching the history builder's
// treatment of missing dates.
func sortedByTime(daily []attendance.DayRecord) []attendance.DayRecord {
	sorted := make([]attendance.DayRecord, len(daily))
	copy(sorted, daily)
	sort.SliceStable(sorted, func(i, j int) bool {
		return recordEpoch(sorted[i]) < recordEpoch(sorted[j])
	})
	return sorted
}

func recordEpoch(day attendance.DayRecord) int64 {
	if day.CheckInTime != nil {
		return day.CheckInTime.Unix()
	}
	if t, err := time.Parse("2006-01-02", day.Date); err == nil {
		return t.Unix()
	}
	return 0
}

// hasImpossibleTravel reports once per employee, stopping at the first
// consecutive pair whose distance and time gap are inconsistent.
func hasImpossibleTravel(sorted []attendance.DayRecord) bool {
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if !prev.HasLocation || !curr.HasLocation {
			continue
		}
		prevEpoch, currEpoch := recordEpoch(prev), recordEpoch(curr)
		if prevEpoch == 0 || currEpoch == 0 {
			continue
		}
		gap := time.Duration(currEpoch-prevEpoch) * time.Second
		if gap < 0 {
			gap = -gap
		}
		distance := utils.HaversineDistanceKm(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)
		if distance > impossibleKm && gap < impossibleGap {
			return true
		}
	}
	return false
}

func hasSuddenPerfectRun(sorted []attendance.DayRecord, summary attendance.Summary) bool {
	if len(sorted) < perfectRunLength {
		return false
	}
	recent := sorted[len(sorted)-perfectRunLength:]
	for _, day := range recent {
		if day.Status != attendance.StatusPresent {
			return false
		}
	}
	return summary.PresentRate() < presentRateSuspect
}

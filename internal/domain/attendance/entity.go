package attendance

import "time"

// Day statuses recognised by the summarizer. Anything else is treated
// as "unknown" and counted toward total days only.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfday = "halfday"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
)

// RawDay is one upstream attendance document for a single employee on a
// single calendar date, shape untouched.
type RawDay struct {
	Date       string // YYYY-MM-DD
	EmployeeID string
	Payload    map[string]any
}

// DayRecord is the canonical per-day attendance view.
type DayRecord struct {
	Date          string // YYYY-MM-DD
	EmployeeID    string
	Status        string
	OvertimeHours float64
	DeviceID      string
	IPAddress     string
	CheckInTime   *time.Time
	Latitude      float64
	Longitude     float64
	HasLocation   bool
}

// Summary aggregates one employee's attendance for one period.
// Devices and IPAddresses are kept sorted so repeated scans over the
// same snapshot produce identical output.
type Summary struct {
	EmployeeID    string
	TotalDays     int
	PresentDays   int
	LeaveDays     int
	OvertimeHours float64
	Devices       []string
	IPAddresses   []string
	Daily         []DayRecord
}

// PresentRate returns presentDays/totalDays, 0 when no days recorded.
func (s Summary) PresentRate() float64 {
	if s.TotalDays == 0 {
		return 0
	}
	return float64(s.PresentDays) / float64(s.TotalDays)
}

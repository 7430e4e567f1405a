package utils

import "time"

// MonthKey formats a time as its YYYY-MM month key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// CurrentMonthKey returns the month key for now, UTC.
func CurrentMonthKey() string {
	return MonthKey(time.Now().UTC())
}

// MonthBounds returns the first and last day of the month, both at
// midnight UTC. ok is false when monthKey is not a valid YYYY-MM key.
func MonthBounds(monthKey string) (start, end time.Time, ok bool) {
	start, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end = start.AddDate(0, 1, -1)
	return start, end, true
}

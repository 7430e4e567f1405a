package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Month key validation ("YYYY-MM")
func IsValidMonthKey(monthKey string) bool {
	_, err := time.Parse("2006-01", monthKey)
	return err == nil
}

// Employee id validation: upstream ids containing path or query
// metacharacters are treated as malformed by the anomaly sweep.
var illegalIDChars = regexp.MustCompile(`[/\\?#%.\[\]]`)

func IsValidEmployeeID(id string) bool {
	return !IsEmpty(id) && !illegalIDChars.MatchString(id)
}

// SanitizeEmployeeID replaces illegal id characters with dashes so a
// malformed id can still key internal maps.
func SanitizeEmployeeID(id string) string {
	return illegalIDChars.ReplaceAllString(strings.TrimSpace(id), "-")
}

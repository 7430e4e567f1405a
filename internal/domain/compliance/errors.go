package compliance

import "errors"

// Compliance domain errors
var (
	// Scope resolution is the only failure that prevents a scan from
	// producing a report at all.
	ErrScanScopeUnresolved = errors.New("scan scope could not be resolved to a month")

	ErrScanNotFound   = errors.New("no scan recorded for this month")
	ErrReportNotFound = errors.New("compliance report not found")
)

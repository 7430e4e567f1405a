package payroll

import "errors"

var (
	ErrRunNotFound = errors.New("payroll run not found")
)

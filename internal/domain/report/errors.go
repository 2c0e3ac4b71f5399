package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("start day must not be after end day")
)

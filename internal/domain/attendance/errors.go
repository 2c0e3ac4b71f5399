package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrInvalidSite      = errors.New("invalid check-in token or inactive work site")
	ErrDuplicateCheckIn = errors.New("check-in for this work site already registered today")

	// Check-out errors
	ErrNoOpenCheckIn         = errors.New("no open check-in to check out of")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must not precede check-in time")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

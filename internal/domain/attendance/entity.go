package attendance

import (
	"time"
)

// Status classifies a day of attendance. present/late are assigned by the
// check-in rule; absent is synthesized by reporting for working days with no
// record; the remaining values are administrative absence reasons.
type Status string

const (
	StatusPresent      Status = "present"
	StatusLate         Status = "late"
	StatusAbsent       Status = "absent"
	StatusSick         Status = "sick"
	StatusVacation     Status = "vacation"
	StatusBusinessTrip Status = "business_trip"
	StatusNoReason     Status = "no_reason"
)

// AbsenceReasons are the statuses an administrator may assign to a day.
var AbsenceReasons = []Status{StatusSick, StatusVacation, StatusBusinessTrip, StatusNoReason}

func (s Status) IsAbsenceReason() bool {
	for _, r := range AbsenceReasons {
		if s == r {
			return true
		}
	}
	return false
}

type Record struct {
	ID         string
	EmployeeID string
	// WorkSiteID is nil for pure absence-reason records that have no
	// physical check-in behind them.
	WorkSiteID *string
	// WorkDay is the server-local calendar day bucket, midnight local time.
	WorkDay      time.Time
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Status       Status
	Notes        *string
	IPAddress    *string
	UserAgent    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// DTO
	EmployeeName *string
	WorkSiteName *string
}

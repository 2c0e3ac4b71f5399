package report

import (
	"time"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/validator"
)

// GridRow is one employee's entry for one calendar day. Synthesized rows
// carry status absent and nil times/site/notes.
type GridRow struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	Status       attendance.Status `json:"status"`
	WorkSiteID   *string           `json:"work_site_id,omitempty"`
	WorkSiteName *string           `json:"work_site_name,omitempty"`
	CheckInTime  *string           `json:"check_in_time,omitempty"`
	CheckOutTime *string           `json:"check_out_time,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	Synthesized  bool              `json:"synthesized"`
}

// DayBucket holds the rows of a single calendar day. Weekend buckets carry
// only rows backed by real records; no absences are synthesized for them.
type DayBucket struct {
	Day  string    `json:"day"`
	Rows []GridRow `json:"rows"`
}

// Tally is the per-employee roll-up over a grid.
type Tally struct {
	EmployeeID       string  `json:"employee_id"`
	TotalDays        int     `json:"total_days"`
	PresentDays      int     `json:"present_days"`
	LateDays         int     `json:"late_days"`
	AbsentDays       int     `json:"absent_days"`
	SickDays         int     `json:"sick_days"`
	VacationDays     int     `json:"vacation_days"`
	BusinessTripDays int     `json:"business_trip_days"`
	NoReasonDays     int     `json:"no_reason_days"`
	AverageHours     float64 `json:"average_hours"`
}

type GridRequest struct {
	StartDay    string   `json:"start_day"`
	EndDay      string   `json:"end_day"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *GridRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDay)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: "start_day must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDay)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: "end_day must not precede start_day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed inclusive day range. Validate must have passed.
func (r *GridRequest) Range(loc *time.Location) (start, end time.Time) {
	s, _ := time.ParseInLocation("2006-01-02", r.StartDay, loc)
	e, _ := time.ParseInLocation("2006-01-02", r.EndDay, loc)
	return s, e
}

// ExportJob is the queue payload for a batch CSV export.
type ExportJob struct {
	StartDay    string   `json:"start_day"`
	EndDay      string   `json:"end_day"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

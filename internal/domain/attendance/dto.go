package attendance

import (
	"github.com/shiftledger/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"-"`
	Token      string `json:"token"`

	// Origin metadata; nil for administrative manual entries.
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}
	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "check-in token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`

	// CheckOutTime is an optional RFC3339 timestamp; the server clock is
	// used when absent.
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AbsenceReasonRequest struct {
	EmployeeID string  `json:"employee_id"`
	Day        string  `json:"day"`
	Reason     Status  `json:"reason"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *AbsenceReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be in YYYY-MM-DD format",
		})
	}
	if !r.Reason.IsAbsenceReason() {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be one of sick, vacation, business_trip, no_reason",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	WorkSiteID   *string `json:"work_site_id,omitempty"`
	WorkSiteName *string `json:"work_site_name,omitempty"`
	WorkDay      string  `json:"work_day"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       Status  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}

package response

import (
	"errors"
	"net/http"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/jwt"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Work-site domain errors
	case errors.Is(err, worksite.ErrWorkSiteNotFound):
		NotFound(w, "Work site not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidSite):
		BadRequest(w, "Unknown or inactive check-in token", nil)
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in at this work site today")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		BadRequest(w, "No open check-in to close", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time precedes check-in time", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, "End day must not precede start day", nil)

	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

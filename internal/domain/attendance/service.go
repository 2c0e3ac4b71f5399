package attendance

import (
	"context"
)

// AttendanceService defines the attendance lifecycle operations.
type AttendanceService interface {
	// CheckIn registers arrival at a work site by check-in token. Fails with
	// ErrInvalidSite for unknown/inactive tokens and ErrDuplicateCheckIn when
	// the employee already checked into that site today.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the employee's most recent open record. Fails with
	// ErrNoOpenCheckIn when there is nothing to close; a repeated call fails
	// the same way rather than silently succeeding.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// SetAbsenceReason assigns an administrative absence status to a day,
	// overwriting the day's record in place or creating a placeholder with no
	// work site. This is the only way a record's status changes after
	// creation.
	SetAbsenceReason(ctx context.Context, req AbsenceReasonRequest) (RecordResponse, error)

	// GetCurrent returns the employee's open record for today, or nil.
	GetCurrent(ctx context.Context, employeeID string) (*RecordResponse, error)

	// Delete soft-deletes a record (administrative data correction).
	Delete(ctx context.Context, id string) error
}

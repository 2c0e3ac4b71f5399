package attendance

import (
	"context"
	"time"
)

// RecordRepository persists the attendance ledger. Soft-deleted rows are
// invisible to every query here.
type RecordRepository interface {
	// Create inserts a new ledger row. A storage-level uniqueness violation
	// on (employee, work site, work day) is returned as ErrDuplicateCheckIn.
	Create(ctx context.Context, rec Record) (Record, error)

	// Update writes the mutable fields (check-out time, status, notes) of an
	// existing row. Returns ErrRecordNotFound if the row is gone.
	Update(ctx context.Context, rec Record) error

	GetByID(ctx context.Context, id string) (Record, error)

	// HasCheckInOn reports whether the employee already has a record for the
	// given work site on the given calendar day.
	HasCheckInOn(ctx context.Context, employeeID, workSiteID string, day time.Time) (bool, error)

	// GetOpenRecord returns the employee's most recent record with no
	// check-out time, ordered by check-in time descending. Administrative
	// manual entries can leave more than one open row; the most recent wins.
	GetOpenRecord(ctx context.Context, employeeID string) (Record, error)

	// GetByEmployeeAndDay returns the employee's record for a calendar day
	// regardless of work site, or nil when none exists.
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Record, error)

	// ListRange loads every record for the given employees whose work day
	// falls in [start, end] inclusive, with employee and site names joined.
	ListRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]Record, error)

	// ListStaleOpen returns open records whose work day is more than
	// olderThanDays calendar days in the past.
	ListStaleOpen(ctx context.Context, olderThanDays int) ([]Record, error)

	// Delete soft-deletes a record.
	Delete(ctx context.Context, id string) error
}

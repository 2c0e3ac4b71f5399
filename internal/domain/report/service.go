package report

import (
	"context"
	"io"
	"time"
)

// ReportService reconstructs the day-by-day attendance matrix from the
// ledger and derives tallies and exports from it.
type ReportService interface {
	// GetCalendarGrid returns one bucket per calendar day in [start, end]
	// inclusive, ascending. Working days get exactly one row per employee,
	// synthesizing absences; weekends emit rows only for real records. A nil
	// employee set defaults to all tracked employees in directory order.
	GetCalendarGrid(ctx context.Context, employeeIDs []string, start, end time.Time) ([]DayBucket, error)

	// GetEmployeeTally rolls the grid up into per-status day counts and the
	// average worked hours over completed records.
	GetEmployeeTally(ctx context.Context, employeeID string, start, end time.Time) (Tally, error)

	// WriteGridCSV streams the grid as CSV, one line per row.
	WriteGridCSV(ctx context.Context, w io.Writer, employeeIDs []string, start, end time.Time) error
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
)

// staleAfterDays is how many calendar days a record may stay open before the
// auto-close job stamps a check-out for it.
const staleAfterDays = 2

type AttendanceJobs struct {
	recordRepo attendance.RecordRepository
	loc        *time.Location
}

func NewAttendanceJobs(recordRepo attendance.RecordRepository, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{recordRepo: recordRepo, loc: loc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_open_records", 1*time.Hour, j.CloseStaleOpenRecords)
}

// CloseStaleOpenRecords stamps a check-out at the end of the record's work
// day for records left open for more than staleAfterDays days. Keeps the
// check-out resolver from walking unbounded history of forgotten check-ins.
func (j *AttendanceJobs) CloseStaleOpenRecords(ctx context.Context) error {
	stale, err := j.recordRepo.ListStaleOpen(ctx, staleAfterDays)
	if err != nil {
		return fmt.Errorf("failed to list stale open records: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, rec := range stale {
		// The work day arrives as midnight UTC from the DATE column; take
		// its calendar date and rebuild end-of-day in the configured zone.
		year, month, day := rec.WorkDay.Date()
		endOfDay := time.Date(year, month, day, 23, 59, 59, 0, j.loc)
		// A late local check-in can land past end-of-day UTC-wise; never
		// stamp a check-out earlier than the check-in.
		if endOfDay.Before(rec.CheckInTime) {
			endOfDay = rec.CheckInTime
		}
		rec.CheckOutTime = &endOfDay

		note := "[auto-close] no check-out recorded; closed at end of work day"
		if rec.Notes != nil && *rec.Notes != "" {
			note = *rec.Notes + "\n" + note
		}
		rec.Notes = &note

		if err := j.recordRepo.Update(ctx, rec); err != nil {
			slog.Error("Cron: failed to auto-close record",
				"record_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-closed stale open records", "count", closed)
	return nil
}

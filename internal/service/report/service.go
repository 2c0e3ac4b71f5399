package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/metrics"
)

type ReportServiceImpl struct {
	attendance.RecordRepository
	employee.EmployeeRepository
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

// resolveEmployees loads the report population in directory order. A nil or
// empty id set means every tracked employee.
func (s *ReportServiceImpl) resolveEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error) {
	if len(employeeIDs) == 0 {
		return s.EmployeeRepository.ListTracked(ctx)
	}
	return s.EmployeeRepository.ListByIDs(ctx, employeeIDs)
}

func rowFromRecord(rec attendance.Record, emp employee.Employee) report.GridRow {
	row := report.GridRow{
		EmployeeID:   rec.EmployeeID,
		EmployeeName: emp.FullName(),
		Status:       rec.Status,
		WorkSiteID:   rec.WorkSiteID,
		WorkSiteName: rec.WorkSiteName,
		Notes:        rec.Notes,
	}

	checkIn := rec.CheckInTime.Format(time.RFC3339)
	row.CheckInTime = &checkIn
	if rec.CheckOutTime != nil {
		checkOut := rec.CheckOutTime.Format(time.RFC3339)
		row.CheckOutTime = &checkOut
	}

	return row
}

// GetCalendarGrid implements report.ReportService.
func (s *ReportServiceImpl) GetCalendarGrid(ctx context.Context, employeeIDs []string, start, end time.Time) ([]report.DayBucket, error) {
	if start.After(end) {
		return nil, report.ErrInvalidDateRange
	}

	employees, err := s.resolveEmployees(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report employees: %w", err)
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	records, err := s.RecordRepository.ListRange(ctx, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	// One row per employee per day. When same-day records exist at several
	// sites, the earliest check-in represents the day.
	index := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		key := dayKey(rec.EmployeeID, rec.WorkDay)
		if existing, ok := index[key]; ok && !rec.CheckInTime.Before(existing.CheckInTime) {
			continue
		}
		index[key] = rec
	}

	var buckets []report.DayBucket
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		bucket := report.DayBucket{Day: day.Format("2006-01-02")}
		weekend := isWeekend(day)

		for _, emp := range employees {
			rec, ok := index[dayKey(emp.ID, day)]
			if ok {
				bucket.Rows = append(bucket.Rows, rowFromRecord(rec, emp))
				continue
			}
			if weekend {
				continue
			}
			// A working day with no ledger row means the employee simply
			// never showed up.
			bucket.Rows = append(bucket.Rows, report.GridRow{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Status:       attendance.StatusAbsent,
				Synthesized:  true,
			})
		}

		buckets = append(buckets, bucket)
	}

	metrics.GridRequestsTotal.Inc()

	return buckets, nil
}

// GetEmployeeTally implements report.ReportService.
func (s *ReportServiceImpl) GetEmployeeTally(ctx context.Context, employeeID string, start, end time.Time) (report.Tally, error) {
	buckets, err := s.GetCalendarGrid(ctx, []string{employeeID}, start, end)
	if err != nil {
		return report.Tally{}, err
	}

	tally := report.Tally{EmployeeID: employeeID}
	for _, bucket := range buckets {
		for _, row := range bucket.Rows {
			if row.EmployeeID != employeeID {
				continue
			}
			tally.TotalDays++
			switch row.Status {
			case attendance.StatusPresent:
				tally.PresentDays++
			case attendance.StatusLate:
				tally.LateDays++
			case attendance.StatusAbsent:
				tally.AbsentDays++
			case attendance.StatusSick:
				tally.SickDays++
			case attendance.StatusVacation:
				tally.VacationDays++
			case attendance.StatusBusinessTrip:
				tally.BusinessTripDays++
			case attendance.StatusNoReason:
				tally.NoReasonDays++
			}
		}
	}

	records, err := s.RecordRepository.ListRange(ctx, []string{employeeID}, start, end)
	if err != nil {
		return report.Tally{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	var totalHours float64
	var completed int
	for _, rec := range records {
		if rec.CheckOutTime == nil {
			continue
		}
		totalHours += rec.CheckOutTime.Sub(rec.CheckInTime).Hours()
		completed++
	}
	if completed > 0 {
		tally.AverageHours = totalHours / float64(completed)
	}

	return tally, nil
}

// WriteGridCSV implements report.ReportService.
func (s *ReportServiceImpl) WriteGridCSV(ctx context.Context, w io.Writer, employeeIDs []string, start, end time.Time) error {
	buckets, err := s.GetCalendarGrid(ctx, employeeIDs, start, end)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"day", "employee_id", "employee_name", "status", "work_site", "check_in_time", "check_out_time", "notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, bucket := range buckets {
		for _, row := range bucket.Rows {
			line := []string{
				bucket.Day,
				row.EmployeeID,
				row.EmployeeName,
				string(row.Status),
				deref(row.WorkSiteName),
				deref(row.CheckInTime),
				deref(row.CheckOutTime),
				deref(row.Notes),
			}
			if err := cw.Write(line); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

func NewReportService(recordRepo attendance.RecordRepository, employeeRepo employee.EmployeeRepository) report.ReportService {
	return &ReportServiceImpl{
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
	}
}

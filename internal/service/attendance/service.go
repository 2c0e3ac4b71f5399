package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/clock"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/metrics"
	"github.com/shiftledger/attendance-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	worksite.WorkSiteRepository
	employee.EmployeeRepository
	clock  clock.Clock
	cutoff time.Duration
	loc    *time.Location

	// runTx wraps find-or-create flows in a database transaction.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func toResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		WorkSiteID:   rec.WorkSiteID,
		WorkSiteName: rec.WorkSiteName,
		WorkDay:      rec.WorkDay.Format("2006-01-02"),
		CheckInTime:  rec.CheckInTime.Format(time.RFC3339),
		Status:       rec.Status,
		Notes:        rec.Notes,
	}
	if rec.CheckOutTime != nil {
		formatted := rec.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &formatted
	}
	return resp
}

// workDay truncates t to midnight in the configured location.
func (a *AttendanceServiceImpl) workDay(t time.Time) time.Time {
	local := t.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	site, err := a.WorkSiteRepository.ResolveToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, worksite.ErrWorkSiteNotFound) {
			return attendance.RecordResponse{}, attendance.ErrInvalidSite
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve check-in token: %w", err)
	}

	now := a.clock.Now().In(a.loc)
	day := a.workDay(now)

	exists, err := a.RecordRepository.HasCheckInOn(ctx, emp.ID, site.ID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check for existing check-in: %w", err)
	}
	if exists {
		return attendance.RecordResponse{}, attendance.ErrDuplicateCheckIn
	}

	// A check-in exactly at the cutoff still counts as present.
	status := attendance.StatusPresent
	if now.After(day.Add(a.cutoff)) {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		EmployeeID:  emp.ID,
		WorkSiteID:  &site.ID,
		WorkDay:     day,
		CheckInTime: now,
		Status:      status,
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
	}

	created, err := a.RecordRepository.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	metrics.CheckInsTotal.WithLabelValues(string(status)).Inc()

	name := emp.FullName()
	created.EmployeeName = &name
	created.WorkSiteName = &site.Name
	return toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := a.RecordRepository.GetOpenRecord(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	checkOut := a.clock.Now().In(a.loc)
	if req.CheckOutTime != nil {
		parsed, _ := time.Parse(time.RFC3339, *req.CheckOutTime)
		checkOut = parsed.In(a.loc)
	}

	if checkOut.Before(rec.CheckInTime) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	rec.CheckOutTime = &checkOut
	if req.Notes != nil {
		note := "[check-out] " + *req.Notes
		if rec.Notes != nil {
			note = *rec.Notes + "\n" + note
		}
		rec.Notes = &note
	}

	if err := a.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}

	metrics.CheckOutsTotal.Inc()

	return toResponse(rec), nil
}

// SetAbsenceReason implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SetAbsenceReason(ctx context.Context, req attendance.AbsenceReasonRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, a.loc)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse day: %w", err)
	}

	var result attendance.Record
	err = a.runTx(ctx, func(txCtx context.Context) error {
		existing, err := a.RecordRepository.GetByEmployeeAndDay(txCtx, emp.ID, day)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.Status = req.Reason
			existing.Notes = req.Notes
			if err := a.RecordRepository.Update(txCtx, *existing); err != nil {
				return err
			}
			result = *existing
			return nil
		}

		// No ledger row for the day yet. Record the reason as a placeholder
		// with no work site behind it.
		placeholder := attendance.Record{
			EmployeeID:  emp.ID,
			WorkDay:     day,
			CheckInTime: day,
			Status:      req.Reason,
			Notes:       req.Notes,
		}
		created, err := a.RecordRepository.Create(txCtx, placeholder)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	name := emp.FullName()
	result.EmployeeName = &name
	return toResponse(result), nil
}

// GetCurrent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetCurrent(ctx context.Context, employeeID string) (*attendance.RecordResponse, error) {
	rec, err := a.RecordRepository.GetOpenRecord(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenCheckIn) {
			return nil, nil
		}
		return nil, err
	}

	// An open record left over from an earlier day is not a current session.
	// The work day comes back from the DATE column at midnight UTC, so the
	// comparison is on calendar dates, not instants.
	today := a.workDay(a.clock.Now())
	if rec.WorkDay.Format("2006-01-02") != today.Format("2006-01-02") {
		return nil, nil
	}

	resp := toResponse(rec)
	return &resp, nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.RecordRepository.Delete(ctx, id)
}

func NewAttendanceService(
	db *database.DB,
	recordRepo attendance.RecordRepository,
	siteRepo worksite.WorkSiteRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	cutoff time.Duration,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		RecordRepository:   recordRepo,
		WorkSiteRepository: siteRepo,
		EmployeeRepository: employeeRepo,
		clock:              clk,
		cutoff:             cutoff,
		loc:                loc,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

package report

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
)

type fakeRecordRepo struct {
	records []attendance.Record
}

func (f *fakeRecordRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, _ attendance.Record) error { return nil }

func (f *fakeRecordRepo) GetByID(_ context.Context, _ string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) HasCheckInOn(_ context.Context, _, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeRecordRepo) GetOpenRecord(_ context.Context, _ string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrNoOpenCheckIn
}

func (f *fakeRecordRepo) GetByEmployeeAndDay(_ context.Context, _ string, _ time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) ListRange(_ context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Record, error) {
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}

	var out []attendance.Record
	for _, rec := range f.records {
		if !wanted[rec.EmployeeID] {
			continue
		}
		if rec.WorkDay.Before(start) || rec.WorkDay.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecordRepo) ListStaleOpen(_ context.Context, _ int) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) sorted(list []employee.Employee) []employee.Employee {
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastName != list[j].LastName {
			return list[i].LastName < list[j].LastName
		}
		return list[i].FirstName < list[j].FirstName
	})
	return list
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListTracked(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Role == employee.RoleEmployee && emp.Active {
			out = append(out, emp)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeEmployeeRepo) ListByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []employee.Employee
	for _, emp := range f.employees {
		if wanted[emp.ID] {
			out = append(out, emp)
		}
	}
	return f.sorted(out), nil
}

func strPtr(s string) *string { return &s }

// Monday 2026-03-02 through Sunday 2026-03-08.
var (
	monday   = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday  = monday.AddDate(0, 0, 1)
	saturday = monday.AddDate(0, 0, 5)
	sunday   = monday.AddDate(0, 0, 6)
)

func newTestService() *ReportServiceImpl {
	records := &fakeRecordRepo{records: []attendance.Record{
		{
			ID:           "rec-1",
			EmployeeID:   "emp-1",
			WorkSiteID:   strPtr("site-1"),
			WorkSiteName: strPtr("Main Yard"),
			WorkDay:      monday,
			CheckInTime:  monday.Add(8 * time.Hour),
			CheckOutTime: timePtr(monday.Add(16 * time.Hour)),
			Status:       attendance.StatusPresent,
		},
		{
			ID:          "rec-2",
			EmployeeID:  "emp-1",
			WorkSiteID:  strPtr("site-1"),
			WorkDay:     tuesday,
			CheckInTime: tuesday.Add(9*time.Hour + 30*time.Minute),
			Status:      attendance.StatusLate,
		},
		{
			ID:          "rec-3",
			EmployeeID:  "emp-2",
			WorkDay:     tuesday,
			CheckInTime: tuesday,
			Status:      attendance.StatusSick,
		},
		{
			ID:           "rec-4",
			EmployeeID:   "emp-2",
			WorkSiteID:   strPtr("site-1"),
			WorkDay:      saturday,
			CheckInTime:  saturday.Add(10 * time.Hour),
			CheckOutTime: timePtr(saturday.Add(14 * time.Hour)),
			Status:       attendance.StatusPresent,
		},
	}}

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-2", FirstName: "Carl", LastName: "Adler", Role: employee.RoleEmployee, Active: true},
		{ID: "emp-1", FirstName: "Anna", LastName: "Berg", Role: employee.RoleEmployee, Active: true},
		{ID: "mgr-1", FirstName: "Maria", LastName: "Chef", Role: employee.RoleManager, Active: true},
	}}

	return &ReportServiceImpl{
		RecordRepository:   records,
		EmployeeRepository: employees,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestGetCalendarGridInvalidRange(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetCalendarGrid(context.Background(), nil, tuesday, monday)
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestGetCalendarGridSingleDay(t *testing.T) {
	svc := newTestService()

	buckets, err := svc.GetCalendarGrid(context.Background(), nil, monday, monday)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-03-02", buckets[0].Day)

	// Directory order: Adler before Berg. Adler has no record on Monday, so
	// an absent row is synthesized for him.
	require.Len(t, buckets[0].Rows, 2)
	adler, berg := buckets[0].Rows[0], buckets[0].Rows[1]

	assert.Equal(t, "emp-2", adler.EmployeeID)
	assert.Equal(t, attendance.StatusAbsent, adler.Status)
	assert.True(t, adler.Synthesized)
	assert.Nil(t, adler.CheckInTime)

	assert.Equal(t, "emp-1", berg.EmployeeID)
	assert.Equal(t, "Berg Anna", berg.EmployeeName)
	assert.Equal(t, attendance.StatusPresent, berg.Status)
	assert.False(t, berg.Synthesized)
	require.NotNil(t, berg.CheckInTime)
	assert.Equal(t, "2026-03-02T08:00:00Z", *berg.CheckInTime)
	require.NotNil(t, berg.WorkSiteName)
	assert.Equal(t, "Main Yard", *berg.WorkSiteName)
}

func TestGetCalendarGridFullWeek(t *testing.T) {
	svc := newTestService()

	buckets, err := svc.GetCalendarGrid(context.Background(), nil, monday, sunday)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	// Every weekday has a row per tracked employee.
	for i := 0; i < 5; i++ {
		assert.Len(t, buckets[i].Rows, 2, "weekday %s", buckets[i].Day)
	}

	// Saturday carries only Adler's real weekend shift, Sunday is empty.
	require.Len(t, buckets[5].Rows, 1)
	assert.Equal(t, "emp-2", buckets[5].Rows[0].EmployeeID)
	assert.Equal(t, attendance.StatusPresent, buckets[5].Rows[0].Status)
	assert.False(t, buckets[5].Rows[0].Synthesized)
	assert.Empty(t, buckets[6].Rows)

	// Tuesday shows the sick record verbatim, not a synthesized absence.
	tue := buckets[1]
	assert.Equal(t, attendance.StatusSick, tue.Rows[0].Status)
	assert.False(t, tue.Rows[0].Synthesized)
	assert.Equal(t, attendance.StatusLate, tue.Rows[1].Status)
}

func TestGetCalendarGridExplicitEmployees(t *testing.T) {
	svc := newTestService()

	buckets, err := svc.GetCalendarGrid(context.Background(), []string{"emp-1"}, monday, tuesday)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Len(t, buckets[0].Rows, 1)
	assert.Equal(t, "emp-1", buckets[0].Rows[0].EmployeeID)
}

func TestGetCalendarGridMultiSiteDayKeepsEarliestCheckIn(t *testing.T) {
	svc := newTestService()
	repo := svc.RecordRepository.(*fakeRecordRepo)

	// A second same-day check-in at another site, listed before the morning
	// one to make sure SQL order does not decide the winner.
	repo.records = append([]attendance.Record{{
		ID:           "rec-5",
		EmployeeID:   "emp-1",
		WorkSiteID:   strPtr("site-2"),
		WorkSiteName: strPtr("North Yard"),
		WorkDay:      monday,
		CheckInTime:  monday.Add(14 * time.Hour),
		Status:       attendance.StatusLate,
	}}, repo.records...)

	buckets, err := svc.GetCalendarGrid(context.Background(), []string{"emp-1"}, monday, monday)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Rows, 1)

	row := buckets[0].Rows[0]
	assert.Equal(t, attendance.StatusPresent, row.Status)
	require.NotNil(t, row.WorkSiteName)
	assert.Equal(t, "Main Yard", *row.WorkSiteName)
	require.NotNil(t, row.CheckInTime)
	assert.Equal(t, "2026-03-02T08:00:00Z", *row.CheckInTime)
}

func TestGetEmployeeTally(t *testing.T) {
	svc := newTestService()

	tally, err := svc.GetEmployeeTally(context.Background(), "emp-1", monday, sunday)
	require.NoError(t, err)

	// Five weekday rows: present Monday, late Tuesday, absent Wed-Fri.
	assert.Equal(t, 5, tally.TotalDays)
	assert.Equal(t, 1, tally.PresentDays)
	assert.Equal(t, 1, tally.LateDays)
	assert.Equal(t, 3, tally.AbsentDays)
	assert.Equal(t, 0, tally.SickDays)

	// Only the completed Monday record counts toward hours.
	assert.InDelta(t, 8.0, tally.AverageHours, 0.001)
}

func TestGetEmployeeTallyWeekendShift(t *testing.T) {
	svc := newTestService()

	tally, err := svc.GetEmployeeTally(context.Background(), "emp-2", monday, sunday)
	require.NoError(t, err)

	// Five weekday rows plus the real Saturday shift.
	assert.Equal(t, 6, tally.TotalDays)
	assert.Equal(t, 1, tally.PresentDays)
	assert.Equal(t, 1, tally.SickDays)
	assert.Equal(t, 4, tally.AbsentDays)
	assert.InDelta(t, 4.0, tally.AverageHours, 0.001)
}

func TestWriteGridCSV(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	err := svc.WriteGridCSV(context.Background(), &buf, []string{"emp-1"}, monday, monday)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "day,employee_id,employee_name,status,work_site,check_in_time,check_out_time,notes", lines[0])
	assert.Equal(t, "2026-03-02,emp-1,Berg Anna,present,Main Yard,2026-03-02T08:00:00Z,2026-03-02T16:00:00Z,", lines[1])
}

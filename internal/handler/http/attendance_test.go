package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftledger/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftledger/attendance-backend-go/internal/domain/employee"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/jwt"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/queue"
)

type stubAttendanceService struct {
	checkInErr  error
	checkOutErr error
	lastCheckIn attendance.CheckInRequest
	lastDeleted string
}

func (s *stubAttendanceService) CheckIn(_ context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	s.lastCheckIn = req
	if s.checkInErr != nil {
		return attendance.RecordResponse{}, s.checkInErr
	}
	return attendance.RecordResponse{
		ID:          "rec-1",
		EmployeeID:  req.EmployeeID,
		WorkDay:     "2026-03-02",
		CheckInTime: "2026-03-02T08:00:00Z",
		Status:      attendance.StatusPresent,
	}, nil
}

func (s *stubAttendanceService) CheckOut(_ context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if s.checkOutErr != nil {
		return attendance.RecordResponse{}, s.checkOutErr
	}
	return attendance.RecordResponse{ID: "rec-1", EmployeeID: req.EmployeeID}, nil
}

func (s *stubAttendanceService) SetAbsenceReason(_ context.Context, req attendance.AbsenceReasonRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{EmployeeID: req.EmployeeID, WorkDay: req.Day, Status: req.Reason}, nil
}

func (s *stubAttendanceService) GetCurrent(_ context.Context, _ string) (*attendance.RecordResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) Delete(_ context.Context, id string) error {
	s.lastDeleted = id
	return nil
}

type stubWorkSiteService struct{}

func (s *stubWorkSiteService) ResolveToken(_ context.Context, _ string) (worksite.WorkSite, error) {
	return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
}

func (s *stubWorkSiteService) List(_ context.Context, _ bool) ([]worksite.WorkSiteResponse, error) {
	return []worksite.WorkSiteResponse{{ID: "site-1", Name: "Main Yard"}}, nil
}

func (s *stubWorkSiteService) Get(_ context.Context, _ string) (worksite.WorkSiteResponse, error) {
	return worksite.WorkSiteResponse{}, worksite.ErrWorkSiteNotFound
}

func (s *stubWorkSiteService) Create(_ context.Context, req worksite.CreateWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	return worksite.WorkSiteResponse{ID: "site-1", Name: req.Name}, nil
}

func (s *stubWorkSiteService) Update(_ context.Context, _ worksite.UpdateWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	return worksite.WorkSiteResponse{}, nil
}

func (s *stubWorkSiteService) Deactivate(_ context.Context, _ string) error { return nil }

func (s *stubWorkSiteService) RegenerateToken(_ context.Context, _ string) (worksite.WorkSiteResponse, error) {
	return worksite.WorkSiteResponse{}, nil
}

type stubReportService struct{}

func (s *stubReportService) GetCalendarGrid(_ context.Context, _ []string, start, end time.Time) ([]report.DayBucket, error) {
	if start.After(end) {
		return nil, report.ErrInvalidDateRange
	}
	return []report.DayBucket{{Day: start.Format("2006-01-02")}}, nil
}

func (s *stubReportService) GetEmployeeTally(_ context.Context, employeeID string, _, _ time.Time) (report.Tally, error) {
	return report.Tally{EmployeeID: employeeID, TotalDays: 5}, nil
}

func (s *stubReportService) WriteGridCSV(_ context.Context, w io.Writer, _ []string, _, _ time.Time) error {
	_, err := w.Write([]byte("day,employee_id\n"))
	return err
}

type testEnv struct {
	server      *httptest.Server
	attendance  *stubAttendanceService
	exportQueue *queue.InMemory
	jwtService  jwt.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	attendanceSvc := &stubAttendanceService{}
	exportQueue := queue.NewInMemory(4)
	jwtService := jwt.NewJWTService("test-secret-key", "1h")

	router := NewRouter(
		jwtService,
		NewAttendanceHandler(attendanceSvc),
		NewWorkSiteHandler(&stubWorkSiteService{}),
		NewReportHandler(&stubReportService{}, exportQueue, time.UTC),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		server:      server,
		attendance:  attendanceSvc,
		exportQueue: exportQueue,
		jwtService:  jwtService,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, role *employee.Role) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if role != nil {
		token, _, err := e.jwtService.GenerateAccessToken("emp-1", *role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func rolePtr(r employee.Role) *employee.Role { return &r }

func TestCheckInEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"token": "site-token"}, rolePtr(employee.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	// The employee id comes from the verified token, never from the body.
	assert.Equal(t, "emp-1", env.attendance.lastCheckIn.EmployeeID)
	assert.Equal(t, "site-token", env.attendance.lastCheckIn.Token)
}

func TestCheckInRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"token": "site-token"}, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckInDuplicateMapsToConflict(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.checkInErr = attendance.ErrDuplicateCheckIn

	resp := env.request(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"token": "site-token"}, rolePtr(employee.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckOutWithoutOpenRecordMapsToBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.attendance.checkOutErr = attendance.ErrNoOpenCheckIn

	resp := env.request(t, http.MethodPost, "/api/v1/attendance/check-out", nil, rolePtr(employee.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteRejectsMalformedRecordID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodDelete, "/api/v1/attendance/not-a-uuid", nil, rolePtr(employee.RoleManager))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.attendance.lastDeleted)

	id := "0192f3a1-0000-7000-8000-000000000001"
	resp = env.request(t, http.MethodDelete, "/api/v1/attendance/"+id, nil, rolePtr(employee.RoleManager))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, env.attendance.lastDeleted)
}

func TestWorkSitesRequireManagerRole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/work-sites/", nil, rolePtr(employee.RoleEmployee))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/work-sites/", nil, rolePtr(employee.RoleManager))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGridRejectsReversedRange(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet,
		"/api/v1/reports/grid?start_day=2026-03-08&end_day=2026-03-02", nil, rolePtr(employee.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExportEnqueuesJob(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/reports/exports",
		report.GridRequest{StartDay: "2026-03-02", EndDay: "2026-03-08"}, rolePtr(employee.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msgs, err := env.exportQueue.Consume(ctx)
	require.NoError(t, err)

	msg := <-msgs
	assert.Equal(t, queue.TypeGridExport, msg.Type)

	var job report.ExportJob
	require.NoError(t, json.Unmarshal(msg.Body, &job))
	assert.Equal(t, "2026-03-02", job.StartDay)
	assert.Equal(t, "emp-1", job.RequestedBy)
}

func TestMyTallyUsesTokenIdentity(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet,
		"/api/v1/reports/my-tally?start_day=2026-03-02&end_day=2026-03-08", nil, rolePtr(employee.RoleEmployee))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool         `json:"success"`
		Data    report.Tally `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "emp-1", envelope.Data.EmployeeID)
}

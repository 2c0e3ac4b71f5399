package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
	"github.com/shiftledger/attendance-backend-go/internal/handler/http/response"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/metrics"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/queue"
)

type ReportHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	DownloadGridCSV(w http.ResponseWriter, r *http.Request)
	GetMyTally(w http.ResponseWriter, r *http.Request)
	GetEmployeeTally(w http.ResponseWriter, r *http.Request)
	EnqueueExport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	exportQueue   queue.Queue
	loc           *time.Location
}

func NewReportHandler(reportService report.ReportService, exportQueue queue.Queue, loc *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		exportQueue:   exportQueue,
		loc:           loc,
	}
}

// gridRequestFromQuery builds a GridRequest from query parameters.
func gridRequestFromQuery(r *http.Request) report.GridRequest {
	q := r.URL.Query()

	req := report.GridRequest{
		StartDay: q.Get("start_day"),
		EndDay:   q.Get("end_day"),
	}
	if ids := q.Get("employee_ids"); ids != "" {
		req.EmployeeIDs = strings.Split(ids, ",")
	}

	return req
}

// GetGrid implements ReportHandler.
func (h *reportHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	req := gridRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := req.Range(h.loc)
	result, err := h.reportService.GetCalendarGrid(r.Context(), req.EmployeeIDs, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadGridCSV implements ReportHandler.
func (h *reportHandlerImpl) DownloadGridCSV(w http.ResponseWriter, r *http.Request) {
	req := gridRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := req.Range(h.loc)
	filename := fmt.Sprintf("attendance_%s_%s.csv", req.StartDay, req.EndDay)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.WriteGridCSV(r.Context(), w, req.EmployeeIDs, start, end); err != nil {
		slog.Error("Failed to stream grid CSV", "error", err)
	}
}

// GetMyTally implements ReportHandler.
func (h *reportHandlerImpl) GetMyTally(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	h.writeTally(w, r, employeeID)
}

// GetEmployeeTally implements ReportHandler.
func (h *reportHandlerImpl) GetEmployeeTally(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee id is required", nil)
		return
	}

	h.writeTally(w, r, employeeID)
}

func (h *reportHandlerImpl) writeTally(w http.ResponseWriter, r *http.Request, employeeID string) {
	req := gridRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := req.Range(h.loc)
	result, err := h.reportService.GetEmployeeTally(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EnqueueExport implements ReportHandler.
func (h *reportHandlerImpl) EnqueueExport(w http.ResponseWriter, r *http.Request) {
	var req report.GridRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode export request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	requestedBy, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	job := report.ExportJob{
		StartDay:    req.StartDay,
		EndDay:      req.EndDay,
		EmployeeIDs: req.EmployeeIDs,
		RequestedBy: requestedBy,
	}
	body, err := json.Marshal(job)
	if err != nil {
		response.InternalServerError(w, "Failed to encode export job")
		return
	}

	if err := h.exportQueue.Publish(r.Context(), queue.Message{Type: queue.TypeGridExport, Body: body}); err != nil {
		slog.Error("Failed to enqueue export job", "error", err)
		metrics.ExportJobsTotal.WithLabelValues("enqueue_failed").Inc()
		response.InternalServerError(w, "Failed to enqueue export job")
		return
	}

	metrics.ExportJobsTotal.WithLabelValues("enqueued").Inc()
	response.Accepted(w, "Export job enqueued", job)
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftledger/attendance-backend-go/internal/domain/worksite"
	"github.com/shiftledger/attendance-backend-go/internal/handler/http/response"
)

type WorkSiteHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	RegenerateToken(w http.ResponseWriter, r *http.Request)
}

type workSiteHandlerImpl struct {
	workSiteService worksite.WorkSiteService
}

func NewWorkSiteHandler(workSiteService worksite.WorkSiteService) WorkSiteHandler {
	return &workSiteHandlerImpl{
		workSiteService: workSiteService,
	}
}

// List implements WorkSiteHandler.
func (h *workSiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	result, err := h.workSiteService.List(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.workSiteService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksite.CreateWorkSiteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode work site request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workSiteService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work site created", result)
}

// Update implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worksite.UpdateWorkSiteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode work site request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workSiteService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work site updated", result)
}

// Deactivate implements WorkSiteHandler.
func (h *workSiteHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workSiteService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work site deactivated", nil)
}

// RegenerateToken implements WorkSiteHandler.
func (h *workSiteHandlerImpl) RegenerateToken(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.workSiteService.RegenerateToken(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in token regenerated", result)
}

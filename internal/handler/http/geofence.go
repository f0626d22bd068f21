package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GeofenceHandler interface {
	CreateOffice(w http.ResponseWriter, r *http.Request)
	UpdateOffice(w http.ResponseWriter, r *http.Request)
	DeleteOffice(w http.ResponseWriter, r *http.Request)
	ListOffices(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &geofenceHandlerImpl{
		geofenceService: geofenceService,
	}
}

// CreateOffice implements GeofenceHandler.
func (h *geofenceHandlerImpl) CreateOffice(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateOfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.geofenceService.CreateOffice(r.Context(), req)
	if err != nil {
		slog.Error("CreateOffice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office location created successfully", resp)
}

// UpdateOffice implements GeofenceHandler.
func (h *geofenceHandlerImpl) UpdateOffice(w http.ResponseWriter, r *http.Request) {
	var req geofence.UpdateOfficeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOffice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.geofenceService.UpdateOffice(r.Context(), req)
	if err != nil {
		slog.Error("UpdateOffice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated successfully", resp)
}

// DeleteOffice implements GeofenceHandler.
func (h *geofenceHandlerImpl) DeleteOffice(w http.ResponseWriter, r *http.Request) {
	if err := h.geofenceService.DeleteOffice(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location deleted successfully", nil)
}

// ListOffices implements GeofenceHandler.
func (h *geofenceHandlerImpl) ListOffices(w http.ResponseWriter, r *http.Request) {
	resp, err := h.geofenceService.ListOffices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetSettings implements GeofenceHandler.
func (h *geofenceHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.geofenceService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateSettings implements GeofenceHandler.
func (h *geofenceHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req geofence.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.geofenceService.UpdateSettings(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence settings updated successfully", resp)
}

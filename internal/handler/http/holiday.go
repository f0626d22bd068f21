package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	MyQuota(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	SetQuota(w http.ResponseWriter, r *http.Request)
	BulkSetQuota(w http.ResponseWriter, r *http.Request)
	Quotas(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// Apply implements HolidayHandler.
func (h *holidayHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req holiday.ApplyHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.holidayService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("Apply holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Personal holiday request submitted", resp)
}

// MyRequests implements HolidayHandler.
func (h *holidayHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	resp, err := h.holidayService.MyRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MyQuota implements HolidayHandler.
func (h *holidayHandlerImpl) MyQuota(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	resp, err := h.holidayService.MyQuota(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.holidayService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Decide implements HolidayHandler.
func (h *holidayHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req holiday.DecideHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.holidayService.Decide(r.Context(), req)
	if err != nil {
		slog.Error("Decide holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Personal holiday request decided", resp)
}

// SetQuota implements HolidayHandler.
func (h *holidayHandlerImpl) SetQuota(w http.ResponseWriter, r *http.Request) {
	var req holiday.SetQuotaRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetQuota decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.holidayService.SetQuota(r.Context(), req)
	if err != nil {
		slog.Error("SetQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quota saved successfully", resp)
}

// BulkSetQuota implements HolidayHandler.
func (h *holidayHandlerImpl) BulkSetQuota(w http.ResponseWriter, r *http.Request) {
	var req holiday.BulkSetQuotaRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkSetQuota decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	processed, err := h.holidayService.BulkSetQuota(r.Context(), req)
	if err != nil {
		slog.Error("BulkSetQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quotas saved successfully", map[string]int{"processed": processed})
}

// Quotas implements HolidayHandler.
func (h *holidayHandlerImpl) Quotas(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	resp, err := h.holidayService.Quotas(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

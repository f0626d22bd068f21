package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	UpsertStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
	DeleteStructure(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)
	ApplyTemplate(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	BankTransferCSV(w http.ResponseWriter, r *http.Request)
	MySlips(w http.ResponseWriter, r *http.Request)
	MySlip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// UpsertStructure implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertStructure(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertStructureRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertStructure decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.UpsertStructure(r.Context(), req)
	if err != nil {
		slog.Error("UpsertStructure service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved successfully", resp)
}

// GetStructure implements PayrollHandler.
func (h *payrollHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetStructure(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListStructures implements PayrollHandler.
func (h *payrollHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListStructures(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// DeleteStructure implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteStructure(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure deleted successfully", nil)
}

// CreateTemplate implements PayrollHandler.
func (h *payrollHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateTemplateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTemplate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.CreateTemplate(r.Context(), req)
	if err != nil {
		slog.Error("CreateTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary template created successfully", resp)
}

// ListTemplates implements PayrollHandler.
func (h *payrollHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// DeleteTemplate implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary template deleted successfully", nil)
}

// ApplyTemplate implements PayrollHandler.
func (h *payrollHandlerImpl) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req payroll.ApplyTemplateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyTemplate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TemplateID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	applied, err := h.payrollService.ApplyTemplate(r.Context(), req)
	if err != nil {
		slog.Error("ApplyTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template applied successfully", map[string]int{"applied": applied})
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		slog.Error("Generate payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", resp)
}

// ListRecords implements PayrollHandler.
func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter payroll.RecordFilter
	if v := q.Get("month"); v != "" {
		filter.Month = &v
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("ListRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Records, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
		TotalPages: resp.TotalPages,
	})
}

// GetRecord implements PayrollHandler.
func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Override implements PayrollHandler.
func (h *payrollHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	var req payroll.OverrideRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Override decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.Override(r.Context(), req)
	if err != nil {
		slog.Error("Override service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record overridden successfully", resp)
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkPaid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	paid, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		slog.Error("MarkPaid service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll records marked as paid", map[string]int{"paid": paid})
}

// BankTransferCSV implements PayrollHandler.
func (h *payrollHandlerImpl) BankTransferCSV(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query parameter 'month' is required", nil)
		return
	}

	data, err := h.payrollService.BankTransferCSV(r.Context(), month)
	if err != nil {
		slog.Error("BankTransferCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.CSV(w, "bank-transfer-"+month+".csv", data)
}

// MySlips implements PayrollHandler.
func (h *payrollHandlerImpl) MySlips(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.MySlips(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MySlip implements PayrollHandler.
func (h *payrollHandlerImpl) MySlip(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.MySlip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/report"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	Payroll(w http.ResponseWriter, r *http.Request)
	LOP(w http.ResponseWriter, r *http.Request)
	Tasks(w http.ResponseWriter, r *http.Request)
	Holidays(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthParam(r *http.Request) (string, error) {
	params := report.MonthParams{Month: r.URL.Query().Get("month")}
	if err := params.Validate(); err != nil {
		return "", err
	}
	return params.Month, nil
}

func yearParam(r *http.Request) int {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = time.Now().Year()
	}
	return year
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if wantsCSV(r) {
		data, err := h.reportService.AttendanceReportCSV(r.Context(), month)
		if err != nil {
			slog.Error("Attendance report CSV error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.CSV(w, "attendance-report-"+month+".csv", data)
		return
	}

	rows, err := h.reportService.AttendanceReport(r.Context(), month)
	if err != nil {
		slog.Error("Attendance report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Leave implements ReportHandler.
func (h *reportHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	year := yearParam(r)

	if wantsCSV(r) {
		data, err := h.reportService.LeaveReportCSV(r.Context(), year)
		if err != nil {
			slog.Error("Leave report CSV error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.CSV(w, "leave-report-"+strconv.Itoa(year)+".csv", data)
		return
	}

	rows, err := h.reportService.LeaveReport(r.Context(), year)
	if err != nil {
		slog.Error("Leave report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Payroll implements ReportHandler.
func (h *reportHandlerImpl) Payroll(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if wantsCSV(r) {
		data, err := h.reportService.PayrollReportCSV(r.Context(), month)
		if err != nil {
			slog.Error("Payroll report CSV error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.CSV(w, "payroll-report-"+month+".csv", data)
		return
	}

	rows, err := h.reportService.PayrollReport(r.Context(), month)
	if err != nil {
		slog.Error("Payroll report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// LOP implements ReportHandler.
func (h *reportHandlerImpl) LOP(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.LOPReport(r.Context(), month)
	if err != nil {
		slog.Error("LOP report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Tasks implements ReportHandler.
func (h *reportHandlerImpl) Tasks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.TaskReport(r.Context())
	if err != nil {
		slog.Error("Task report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Holidays implements ReportHandler.
func (h *reportHandlerImpl) Holidays(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.HolidayReport(r.Context(), yearParam(r))
	if err != nil {
		slog.Error("Holiday report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

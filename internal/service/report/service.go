package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/emsuite/ems-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(reportRepository report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{ReportRepository: reportRepository}
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// AttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, month string) ([]report.AttendanceReportRow, error) {
	return s.ReportRepository.AttendanceSummaryByMonth(ctx, month)
}

// AttendanceReportCSV implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReportCSV(ctx context.Context, month string) ([]byte, error) {
	rows, err := s.AttendanceReport(ctx, month)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeCode,
			r.EmployeeName,
			strconv.Itoa(r.PresentDays),
			strconv.Itoa(r.HalfDays),
			strconv.Itoa(r.AbsentDays),
			strconv.Itoa(r.LeaveDays),
			strconv.Itoa(r.WFHDays),
		})
	}

	return renderCSV(
		[]string{"employee_code", "employee_name", "present_days", "half_days", "absent_days", "leave_days", "wfh_days"},
		records,
	)
}

// LeaveReport implements report.ReportService.
func (s *ReportServiceImpl) LeaveReport(ctx context.Context, year int) ([]report.LeaveReportRow, error) {
	return s.ReportRepository.LeaveSummaryByYear(ctx, year)
}

// LeaveReportCSV implements report.ReportService.
func (s *ReportServiceImpl) LeaveReportCSV(ctx context.Context, year int) ([]byte, error) {
	rows, err := s.LeaveReport(ctx, year)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeCode,
			r.EmployeeName,
			r.LeaveType,
			r.Allocated.String(),
			r.Used.String(),
			r.Available.String(),
		})
	}

	return renderCSV(
		[]string{"employee_code", "employee_name", "leave_type", "allocated", "used", "available"},
		records,
	)
}

// PayrollReport implements report.ReportService.
func (s *ReportServiceImpl) PayrollReport(ctx context.Context, month string) ([]report.PayrollReportRow, error) {
	return s.ReportRepository.PayrollSummaryByMonth(ctx, month)
}

// PayrollReportCSV implements report.ReportService.
func (s *ReportServiceImpl) PayrollReportCSV(ctx context.Context, month string) ([]byte, error) {
	rows, err := s.PayrollReport(ctx, month)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeCode,
			r.EmployeeName,
			r.GrossSalary.StringFixed(2),
			r.Deductions.StringFixed(2),
			r.LOPAmount.StringFixed(2),
			r.NetSalary.StringFixed(2),
			r.Status,
		})
	}

	return renderCSV(
		[]string{"employee_code", "employee_name", "gross_salary", "deductions", "lop_amount", "net_salary", "status"},
		records,
	)
}

// LOPReport implements report.ReportService.
func (s *ReportServiceImpl) LOPReport(ctx context.Context, month string) ([]report.LOPReportRow, error) {
	return s.ReportRepository.LOPSummaryByMonth(ctx, month)
}

// TaskReport implements report.ReportService.
func (s *ReportServiceImpl) TaskReport(ctx context.Context) ([]report.TaskReportRow, error) {
	return s.ReportRepository.TaskSummary(ctx)
}

// HolidayReport implements report.ReportService.
func (s *ReportServiceImpl) HolidayReport(ctx context.Context, year int) ([]report.HolidayReportRow, error) {
	return s.ReportRepository.HolidaySummaryByYear(ctx, year)
}

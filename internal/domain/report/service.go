package report

import "context"

type ReportService interface {
	AttendanceReport(ctx context.Context, month string) ([]AttendanceReportRow, error)
	AttendanceReportCSV(ctx context.Context, month string) ([]byte, error)
	LeaveReport(ctx context.Context, year int) ([]LeaveReportRow, error)
	LeaveReportCSV(ctx context.Context, year int) ([]byte, error)
	PayrollReport(ctx context.Context, month string) ([]PayrollReportRow, error)
	PayrollReportCSV(ctx context.Context, month string) ([]byte, error)
	LOPReport(ctx context.Context, month string) ([]LOPReportRow, error)
	TaskReport(ctx context.Context) ([]TaskReportRow, error)
	HolidayReport(ctx context.Context, year int) ([]HolidayReportRow, error)
}

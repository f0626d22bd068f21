package report

import "context"

// ReportRepository runs the aggregation queries behind the admin reports.
type ReportRepository interface {
	AttendanceSummaryByMonth(ctx context.Context, month string) ([]AttendanceReportRow, error)
	LeaveSummaryByYear(ctx context.Context, year int) ([]LeaveReportRow, error)
	PayrollSummaryByMonth(ctx context.Context, month string) ([]PayrollReportRow, error)
	LOPSummaryByMonth(ctx context.Context, month string) ([]LOPReportRow, error)
	TaskSummary(ctx context.Context) ([]TaskReportRow, error)
	HolidaySummaryByYear(ctx context.Context, year int) ([]HolidayReportRow, error)
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/report"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// AttendanceSummaryByMonth implements report.ReportRepository.
func (r *reportRepositoryImpl) AttendanceSummaryByMonth(ctx context.Context, month string) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name,
			   COUNT(*) FILTER (WHERE a.status = $2),
			   COUNT(*) FILTER (WHERE a.status = $3),
			   COUNT(*) FILTER (WHERE a.status = $4),
			   COUNT(*) FILTER (WHERE a.status = $5),
			   COUNT(*) FILTER (WHERE a.work_mode = $6)
		FROM employees e
		LEFT JOIN attendances a
			ON a.employee_id = e.id AND TO_CHAR(a.date, 'YYYY-MM') = $1
		WHERE e.active = TRUE
		GROUP BY e.id, e.employee_code, e.full_name
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, month,
		attendance.StatusPresent,
		attendance.StatusHalfDay,
		attendance.StatusAbsent,
		attendance.StatusOnLeave,
		attendance.ModeWFH,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	defer rows.Close()

	var results []report.AttendanceReportRow
	for rows.Next() {
		var row report.AttendanceReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.PresentDays, &row.HalfDays, &row.AbsentDays, &row.LeaveDays, &row.WFHDays,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

// LeaveSummaryByYear implements report.ReportRepository.
func (r *reportRepositoryImpl) LeaveSummaryByYear(ctx context.Context, year int) ([]report.LeaveReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, t.name,
			   COALESCE(b.allocated, t.annual_quota) + COALESCE(b.carried_over, 0),
			   COALESCE(b.used, 0),
			   COALESCE(b.allocated, t.annual_quota) + COALESCE(b.carried_over, 0) - COALESCE(b.used, 0)
		FROM employees e
		CROSS JOIN leave_types t
		LEFT JOIN leave_balances b
			ON b.employee_id = e.id AND b.leave_type_id = t.id AND b.year = $1
		WHERE e.active = TRUE
		ORDER BY e.full_name ASC, t.name ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave summary: %w", err)
	}
	defer rows.Close()

	var results []report.LeaveReportRow
	for rows.Next() {
		var row report.LeaveReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.LeaveType,
			&row.Allocated, &row.Used, &row.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

// PayrollSummaryByMonth implements report.ReportRepository.
func (r *reportRepositoryImpl) PayrollSummaryByMonth(ctx context.Context, month string) ([]report.PayrollReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name,
			   p.gross_salary, p.total_deductions, p.lop_amount,
			   COALESCE(p.override_net_salary, p.net_salary),
			   p.status
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll summary: %w", err)
	}
	defer rows.Close()

	var results []report.PayrollReportRow
	for rows.Next() {
		var row report.PayrollReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.GrossSalary, &row.Deductions, &row.LOPAmount, &row.NetSalary, &row.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

// LOPSummaryByMonth implements report.ReportRepository.
func (r *reportRepositoryImpl) LOPSummaryByMonth(ctx context.Context, month string) ([]report.LOPReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, p.lop_days, p.lop_amount
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1
		  AND p.lop_days > 0
		ORDER BY p.lop_days DESC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query LOP summary: %w", err)
	}
	defer rows.Close()

	var results []report.LOPReportRow
	for rows.Next() {
		var row report.LOPReportRow
		err := rows.Scan(&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.LOPDays, &row.LOPAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan LOP summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

// TaskSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) TaskSummary(ctx context.Context) ([]report.TaskReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name,
			   COUNT(*) FILTER (WHERE t.status = 'PENDING'),
			   COUNT(*) FILTER (WHERE t.status = 'IN_PROGRESS'),
			   COUNT(*) FILTER (WHERE t.status = 'COMPLETED'),
			   COUNT(t.id)
		FROM employees e
		LEFT JOIN tasks t ON t.assigned_to = e.id
		WHERE e.active = TRUE
		GROUP BY e.id, e.employee_code, e.full_name
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query task summary: %w", err)
	}
	defer rows.Close()

	var results []report.TaskReportRow
	for rows.Next() {
		var row report.TaskReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.Pending, &row.InProgress, &row.Completed, &row.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

// HolidaySummaryByYear implements report.ReportRepository.
func (r *reportRepositoryImpl) HolidaySummaryByYear(ctx context.Context, year int) ([]report.HolidayReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name,
			   COALESCE(q.allocated, 0), COALESCE(q.used, 0),
			   COALESCE(q.allocated, 0) - COALESCE(q.used, 0)
		FROM employees e
		LEFT JOIN personal_holiday_quotas q
			ON q.employee_id = e.id AND q.year = $1
		WHERE e.active = TRUE
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal holiday summary: %w", err)
	}
	defer rows.Close()

	var results []report.HolidayReportRow
	for rows.Next() {
		var row report.HolidayReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.Allocated, &row.Used, &row.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan personal holiday summary row: %w", err)
		}
		results = append(results, row)
	}

	return results, nil
}

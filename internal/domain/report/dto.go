package report

import (
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MonthParams struct {
	Month string `json:"month"` // YYYY-MM
}

func (p *MonthParams) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if _, valid := validator.IsValidMonth(p.Month); !valid {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceReportRow summarizes one employee's attendance for a month.
type AttendanceReportRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	PresentDays  int    `json:"present_days"`
	HalfDays     int    `json:"half_days"`
	AbsentDays   int    `json:"absent_days"`
	LeaveDays    int    `json:"leave_days"`
	WFHDays      int    `json:"wfh_days"`
}

// LeaveReportRow summarizes one employee's leave usage for a year.
type LeaveReportRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	LeaveType    string          `json:"leave_type"`
	Allocated    decimal.Decimal `json:"allocated"`
	Used         decimal.Decimal `json:"used"`
	Available    decimal.Decimal `json:"available"`
}

// PayrollReportRow summarizes one payroll record for a month.
type PayrollReportRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	Deductions   decimal.Decimal `json:"deductions"`
	LOPAmount    decimal.Decimal `json:"lop_amount"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	Status       string          `json:"status"`
}

// LOPReportRow lists employees with loss-of-pay days in a month.
type LOPReportRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	LOPDays      decimal.Decimal `json:"lop_days"`
	LOPAmount    decimal.Decimal `json:"lop_amount"`
}

// TaskReportRow summarizes task completion per employee.
type TaskReportRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Pending      int    `json:"pending"`
	InProgress   int    `json:"in_progress"`
	Completed    int    `json:"completed"`
	Total        int    `json:"total"`
}

// HolidayReportRow summarizes personal holiday usage per employee for a year.
type HolidayReportRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	Allocated    decimal.Decimal `json:"allocated"`
	Used         decimal.Decimal `json:"used"`
	Available    decimal.Decimal `json:"available"`
}

package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a date.
	// Returns nil when no record exists, used by the check-in gate.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, att Attendance) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndMonth retrieves all records for an employee in a month
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error)

	// CountByStatusOnDate counts records per status for a date, used by
	// dashboard counters
	CountByStatusOnDate(ctx context.Context, date time.Time) (map[string]int, error)

	// CountWFHOnDate counts WFH-mode records for a date
	CountWFHOnDate(ctx context.Context, date time.Time) (int, error)

	CreateOutOfRangeLog(ctx context.Context, log OutOfRangeLog) error

	ListOutOfRangeLogs(ctx context.Context, start, end time.Time) ([]OutOfRangeLog, error)

	CreateWFHRequest(ctx context.Context, req WFHRequest) (WFHRequest, error)

	GetWFHRequestByID(ctx context.Context, id string) (WFHRequest, error)

	// GetApprovedWFH reports whether the employee holds an approved WFH
	// request for the date
	GetApprovedWFH(ctx context.Context, employeeID string, date time.Time) (bool, error)

	HasWFHRequest(ctx context.Context, employeeID string, date time.Time) (bool, error)

	ListWFHRequests(ctx context.Context, employeeID *string, status *string) ([]WFHRequest, error)

	UpdateWFHRequest(ctx context.Context, req WFHRequest) error
}

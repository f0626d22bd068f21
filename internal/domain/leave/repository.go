package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveRepository defines data access for leave types, requests and balances.
type LeaveRepository interface {
	CreateType(ctx context.Context, t LeaveType) (LeaveType, error)

	GetTypeByID(ctx context.Context, id string) (LeaveType, error)

	UpdateType(ctx context.Context, t LeaveType) error

	DeleteType(ctx context.Context, id string) error

	ListTypes(ctx context.Context) ([]LeaveType, error)

	CreateRequest(ctx context.Context, r LeaveRequest) (LeaveRequest, error)

	GetRequestByID(ctx context.Context, id string) (LeaveRequest, error)

	UpdateRequest(ctx context.Context, r LeaveRequest) error

	ListRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// HasOverlappingRequest checks for pending/approved requests crossing
	// the given range
	HasOverlappingRequest(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// GetBalance retrieves a balance row, creating it from the type's annual
	// quota when absent
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	ListBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)

	// AddUsed debits (positive delta) or credits (negative delta) a balance
	AddUsed(ctx context.Context, employeeID, leaveTypeID string, year int, delta decimal.Decimal) error

	SetCarriedOver(ctx context.Context, employeeID, leaveTypeID string, year int, amount decimal.Decimal) error

	// ApprovedPaidLeaveDaysInMonth sums approved paid-leave days overlapping
	// a month, used by payroll LOP derivation
	ApprovedPaidLeaveDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error)

	// CountOnLeaveOnDate counts employees with approved leave covering a
	// date, used by dashboard counters
	CountOnLeaveOnDate(ctx context.Context, date time.Time) (int, error)

	// ListEmployeeTypeBalances returns every balance row for a year, used by
	// the year-end carry-forward job
	ListAllBalances(ctx context.Context, year int) ([]LeaveBalance, error)
}

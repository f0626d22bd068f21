package leave

import (
	"context"
)

// LeaveService defines business logic for leave types, requests and balances
type LeaveService interface {
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)

	UpdateType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)

	DeleteType(ctx context.Context, id string) error

	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)

	// Apply files a leave request against the authenticated employee's balance
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Cancel cancels one of the authenticated employee's pending requests
	Cancel(ctx context.Context, id string) (LeaveRequestResponse, error)

	// MyRequests lists the authenticated employee's leave requests
	MyRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// MyBalances lists the authenticated employee's balances for a year
	MyBalances(ctx context.Context, year int) ([]BalanceResponse, error)

	// List lists leave requests with filters (admin)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// Decide approves or rejects a pending request (admin). Approval debits
	// the balance and marks the covered attendance days ON_LEAVE.
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)

	// Balances lists an employee's balances for a year (admin)
	Balances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)

	// CarryForward runs year-end carry-forward for all employees (admin)
	CarryForward(ctx context.Context, fromYear int) (CarryForwardResultResponse, error)
}

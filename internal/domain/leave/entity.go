package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID              string
	Name            string
	AnnualQuota     decimal.Decimal
	Paid            bool
	CarryForward    bool
	MaxCarryForward decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Leave request status values
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type LeaveRequest struct {
	ID           string
	EmployeeID   string
	LeaveTypeID  string
	StartDate    time.Time
	EndDate      time.Time
	Days         decimal.Decimal
	Reason       string
	Status       string
	DecidedBy    *string
	DecidedAt    *time.Time
	RejectReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeCode  *string
	LeaveTypeName *string
	LeaveTypePaid *bool
}

type LeaveBalance struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Allocated   decimal.Decimal
	Used        decimal.Decimal
	CarriedOver decimal.Decimal

	// Joined fields
	LeaveTypeName *string
}

// Available returns the remaining balance.
func (b LeaveBalance) Available() decimal.Decimal {
	return b.Allocated.Add(b.CarriedOver).Sub(b.Used)
}

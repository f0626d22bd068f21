package holiday

import (
	"time"

	"github.com/shopspring/decimal"
)

// Personal holiday request status values
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// PersonalHoliday is a single-day holiday drawn from a quota pool separate
// from leave balances.
type PersonalHoliday struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Reason     string
	Status     string
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

type Quota struct {
	EmployeeID string
	Year       int
	Allocated  decimal.Decimal
	Used       decimal.Decimal

	// Joined fields
	EmployeeName *string
}

// Available returns the remaining quota.
func (q Quota) Available() decimal.Decimal {
	return q.Allocated.Sub(q.Used)
}

package holiday

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HolidayRepository defines data access for personal holidays and quotas.
type HolidayRepository interface {
	Create(ctx context.Context, h PersonalHoliday) (PersonalHoliday, error)

	GetByID(ctx context.Context, id string) (PersonalHoliday, error)

	Update(ctx context.Context, h PersonalHoliday) error

	List(ctx context.Context, employeeID *string, status *string) ([]PersonalHoliday, error)

	HasRequestOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// GetQuota returns the quota row for an employee and year.
	// Returns nil when not configured.
	GetQuota(ctx context.Context, employeeID string, year int) (*Quota, error)

	SetQuota(ctx context.Context, employeeID string, year int, allocated decimal.Decimal) (Quota, error)

	// AddUsed debits (positive delta) or credits (negative delta) a quota
	AddUsed(ctx context.Context, employeeID string, year int, delta decimal.Decimal) error

	ListQuotas(ctx context.Context, year int) ([]Quota, error)

	// CountApprovedInMonth counts approved personal holidays in a month,
	// excluded from payroll LOP
	CountApprovedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
}

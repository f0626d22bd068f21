package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	GetByUserID(ctx context.Context, userID string) (Employee, error)

	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)

	Update(ctx context.Context, emp Employee) error

	SetActive(ctx context.Context, id string, active bool) error

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// GetActive retrieves all active employees, used by payroll generation
	// and dashboard counters
	GetActive(ctx context.Context) ([]Employee, error)

	CountActive(ctx context.Context) (int64, error)
}

package employee

import (
	"context"
)

// EmployeeService defines business logic for employee management
type EmployeeService interface {
	// Create creates an employee and its linked user account (admin)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Update updates employee profile fields (admin)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// List retrieves employees with filters and pagination (admin)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// Get retrieves a single employee by ID (admin)
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// SetActive activates or deactivates an employee and its user account (admin)
	SetActive(ctx context.Context, id string, active bool) (EmployeeResponse, error)

	// MyProfile retrieves the authenticated employee's own profile
	MyProfile(ctx context.Context) (EmployeeResponse, error)
}

package employee

import "time"

type Employee struct {
	ID            string
	UserID        *string
	EmployeeCode  string
	FullName      string
	Email         string
	Phone         *string
	Department    *string
	Designation   *string
	DateOfJoining *time.Time
	Address       *string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

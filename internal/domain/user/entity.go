package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // HR admin - full access
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID               string
	Email            string
	PasswordHash     *string
	Role             Role
	OAuthProvider    *string
	OAuthProviderID  *string
	Active           bool
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is an HR admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

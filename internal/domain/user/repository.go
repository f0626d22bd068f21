package user

import (
	"context"
	"time"
)

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, including the employee join
	GetByEmail(ctx context.Context, email string) (User, error)

	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	SetResetToken(ctx context.Context, id string, token string, expiry time.Time) error

	// GetByResetToken retrieves a user with a non-expired reset token
	GetByResetToken(ctx context.Context, token string) (User, error)

	ClearResetToken(ctx context.Context, id string) error

	SetActive(ctx context.Context, id string, active bool) error
}

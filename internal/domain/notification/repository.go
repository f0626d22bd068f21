package notification

import (
	"context"
)

// NotificationRepository defines data access for announcements.
type NotificationRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)

	List(ctx context.Context, limit int) ([]Announcement, error)

	Delete(ctx context.Context, id string) error
}

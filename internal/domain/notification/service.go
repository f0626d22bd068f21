package notification

import (
	"context"
)

// NotificationService manages announcements and their broadcast
type NotificationService interface {
	// Create stores an announcement and broadcasts it on the announcement
	// topic (admin)
	Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error)

	// List retrieves recent announcements, newest first
	List(ctx context.Context, limit int) ([]AnnouncementResponse, error)

	// Delete removes an announcement (admin)
	Delete(ctx context.Context, id string) error
}

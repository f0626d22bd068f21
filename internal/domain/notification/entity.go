package notification

import "time"

// Announcement is broadcast to all connected employees over the event stream
// and kept for later reads.
type Announcement struct {
	ID        string
	Title     string
	Body      string
	CreatedBy string
	CreatedAt time.Time

	// Joined fields
	AuthorName *string
}

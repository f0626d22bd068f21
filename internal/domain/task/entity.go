package task

import "time"

// Task status values
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

type Task struct {
	ID          string
	Title       string
	Description *string
	AssignedTo  string
	AssignedBy  string
	DueDate     *time.Time
	Progress    int // 0-100
	Status      string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	AssigneeName *string
	AssigneeCode *string
}

type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time

	// Joined fields
	AuthorName *string
}

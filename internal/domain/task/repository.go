package task

import (
	"context"
)

// TaskRepository defines data access for tasks and comments.
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)

	GetByID(ctx context.Context, id string) (Task, error)

	Update(ctx context.Context, t Task) error

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter TaskFilter) ([]Task, int64, error)

	CreateComment(ctx context.Context, c Comment) (Comment, error)

	ListComments(ctx context.Context, taskID string) ([]Comment, error)

	// CountByStatus aggregates task counts per status, used by reports
	CountByStatus(ctx context.Context, assignedTo *string) (map[string]int, error)
}

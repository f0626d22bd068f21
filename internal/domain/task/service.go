package task

import (
	"context"
)

// TaskService defines business logic for task assignment and tracking
type TaskService interface {
	// Create creates and assigns a task (admin)
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	// List lists tasks with filters (admin)
	List(ctx context.Context, filter TaskFilter) (ListTasksResponse, error)

	// MyTasks lists tasks assigned to the authenticated employee
	MyTasks(ctx context.Context, filter TaskFilter) (ListTasksResponse, error)

	// Get retrieves a task with its comments
	Get(ctx context.Context, id string) (TaskResponse, error)

	// UpdateProgress updates progress on an assigned task. Progress 100
	// completes the task; 1-99 moves it to IN_PROGRESS.
	UpdateProgress(ctx context.Context, req UpdateProgressRequest) (TaskResponse, error)

	// AddComment appends a comment to a task
	AddComment(ctx context.Context, req AddCommentRequest) (CommentResponse, error)

	// Delete removes a task (admin)
	Delete(ctx context.Context, id string) error
}

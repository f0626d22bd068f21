package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotAssignee     = errors.New("task is not assigned to you")
	ErrTaskCompleted   = errors.New("task is already completed")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

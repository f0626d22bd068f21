package task

import (
	"context"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/go-chi/jwtauth/v5"
)

type TaskServiceImpl struct {
	task.TaskRepository
}

func NewTaskService(taskRepository task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{TaskRepository: taskRepository}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		AssigneeName: t.AssigneeName,
		AssignedBy:   t.AssignedBy,
		Progress:     t.Progress,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		resp.DueDate = &s
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

func toCommentResponse(c task.Comment) task.CommentResponse {
	return task.CommentResponse{
		ID:         c.ID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t := task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  userID,
		Status:      task.StatusPending,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return task.TaskResponse{}, fmt.Errorf("invalid due_date: %w", err)
		}
		t.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(created), nil
}

func (s *TaskServiceImpl) list(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return task.ListTasksResponse{}, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toResponse(t))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return task.ListTasksResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Tasks:      responses,
	}, nil
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	return s.list(ctx, filter)
}

// MyTasks implements task.TaskService.
func (s *TaskServiceImpl) MyTasks(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return task.ListTasksResponse{}, err
	}

	filter.AssignedTo = &employeeID
	return s.list(ctx, filter)
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	comments, err := s.TaskRepository.ListComments(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	resp := toResponse(t)
	resp.Comments = make([]task.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}

	return resp, nil
}

// UpdateProgress implements task.TaskService.
func (s *TaskServiceImpl) UpdateProgress(ctx context.Context, req task.UpdateProgressRequest) (task.TaskResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if t.AssignedTo != employeeID {
		return task.TaskResponse{}, task.ErrNotAssignee
	}
	if t.Status == task.StatusCompleted {
		return task.TaskResponse{}, task.ErrTaskCompleted
	}
	if req.Progress < 0 || req.Progress > 100 {
		return task.TaskResponse{}, task.ErrInvalidProgress
	}

	t.Progress = req.Progress
	switch {
	case req.Progress == 100:
		now := time.Now()
		t.Status = task.StatusCompleted
		t.CompletedAt = &now
	case req.Progress > 0:
		t.Status = task.StatusInProgress
	default:
		t.Status = task.StatusPending
	}

	if err := s.TaskRepository.Update(ctx, t); err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(t), nil
}

// AddComment implements task.TaskService.
func (s *TaskServiceImpl) AddComment(ctx context.Context, req task.AddCommentRequest) (task.CommentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.CommentResponse{}, err
	}

	// Ensure the task exists before attaching a comment
	if _, err := s.TaskRepository.GetByID(ctx, req.TaskID); err != nil {
		return task.CommentResponse{}, err
	}

	created, err := s.TaskRepository.CreateComment(ctx, task.Comment{
		TaskID:   req.TaskID,
		AuthorID: userID,
		Body:     req.Body,
	})
	if err != nil {
		return task.CommentResponse{}, err
	}

	return toCommentResponse(created), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.TaskRepository.Delete(ctx, id)
}

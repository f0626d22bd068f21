package task

import (
	"strings"

	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  string  `json:"assigned_to"`
	DueDate     *string `json:"due_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{Field: "assigned_to", Message: "is required"})
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if _, valid := validator.IsValidDate(*r.DueDate); !valid {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProgressRequest struct {
	ID       string `json:"-"`
	Progress int    `json:"progress"`
}

func (r *UpdateProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Progress < 0 || r.Progress > 100 {
		errs = append(errs, validator.ValidationError{Field: "progress", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddCommentRequest struct {
	TaskID string `json:"-"`
	Body   string `json:"body"`
}

func (r *AddCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	AssignedTo   string            `json:"assigned_to"`
	AssigneeName *string           `json:"assignee_name,omitempty"`
	AssignedBy   string            `json:"assigned_by"`
	DueDate      *string           `json:"due_date,omitempty"`
	Progress     int               `json:"progress"`
	Status       string            `json:"status"`
	CompletedAt  *string           `json:"completed_at,omitempty"`
	CreatedAt    string            `json:"created_at"`
	Comments     []CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"author_id"`
	AuthorName *string `json:"author_name,omitempty"`
	Body       string  `json:"body"`
	CreatedAt  string  `json:"created_at"`
}

type TaskFilter struct {
	AssignedTo *string `json:"assigned_to,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // due_date, created_at, progress, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		validStatuses := []string{StatusPending, StatusInProgress, StatusCompleted}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: PENDING, IN_PROGRESS, COMPLETED"})
		}
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must not exceed 100"})
	}
	if f.SortBy != "" {
		validSortFields := []string{"due_date", "created_at", "progress", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "must be one of: due_date, created_at, progress, status"})
		}
	} else {
		f.SortBy = "created_at"
	}
	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "must be one of: asc, desc"})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTasksResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Tasks      []TaskResponse `json:"tasks"`
}

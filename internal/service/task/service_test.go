package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID     = "user-001"
	testEmployeeID = "emp-001"
)

type fakeTaskRepo struct {
	task.TaskRepository

	tasks    map[string]task.Task
	comments map[string][]task.Comment
	nextID   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    make(map[string]task.Task),
		comments: make(map[string][]task.Comment),
	}
}

func (f *fakeTaskRepo) Create(_ context.Context, t task.Task) (task.Task, error) {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.CreatedAt = time.Now()
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t task.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) CreateComment(_ context.Context, c task.Comment) (task.Comment, error) {
	f.nextID++
	c.ID = fmt.Sprintf("comment-%d", f.nextID)
	c.CreatedAt = time.Now()
	f.comments[c.TaskID] = append(f.comments[c.TaskID], c)
	return c, nil
}

func (f *fakeTaskRepo) ListComments(_ context.Context, taskID string) ([]task.Comment, error) {
	return f.comments[taskID], nil
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", testUserID))
	require.NoError(t, tok.Set("employee_id", testEmployeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func seedTask(t *testing.T, repo *fakeTaskRepo, assignedTo string, progress int, status string) task.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), task.Task{
		Title:      "Quarterly inventory audit",
		AssignedTo: assignedTo,
		AssignedBy: "user-admin",
		Progress:   progress,
		Status:     status,
	})
	require.NoError(t, err)
	return created
}

func TestCreate_SetsAssignerFromClaims(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)

	due := "2026-09-15"
	resp, err := svc.Create(testContext(t), task.CreateTaskRequest{
		Title:      "Prepare onboarding deck",
		AssignedTo: "emp-002",
		DueDate:    &due,
	})

	require.NoError(t, err)
	assert.Equal(t, testUserID, resp.AssignedBy)
	assert.Equal(t, task.StatusPending, resp.Status)
	require.NotNil(t, resp.DueDate)
	assert.Equal(t, due, *resp.DueDate)
}

func TestCreate_InvalidDueDate(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())

	due := "next friday"
	_, err := svc.Create(testContext(t), task.CreateTaskRequest{
		Title:      "Prepare onboarding deck",
		AssignedTo: "emp-002",
		DueDate:    &due,
	})

	assert.Error(t, err)
}

func TestUpdateProgress_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		progress   int
		wantStatus string
	}{
		{"zero resets to pending", 0, task.StatusPending},
		{"partial moves to in progress", 40, task.StatusInProgress},
		{"full completes", 100, task.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTaskRepo()
			svc := NewTaskService(repo)
			created := seedTask(t, repo, testEmployeeID, 10, task.StatusInProgress)

			resp, err := svc.UpdateProgress(testContext(t), task.UpdateProgressRequest{
				ID:       created.ID,
				Progress: tt.progress,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.progress, resp.Progress)
			if tt.progress == 100 {
				assert.NotNil(t, resp.CompletedAt)
			} else {
				assert.Nil(t, resp.CompletedAt)
			}
		})
	}
}

func TestUpdateProgress_NotAssignee(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	created := seedTask(t, repo, "emp-someone-else", 0, task.StatusPending)

	_, err := svc.UpdateProgress(testContext(t), task.UpdateProgressRequest{ID: created.ID, Progress: 50})

	assert.ErrorIs(t, err, task.ErrNotAssignee)
}

func TestUpdateProgress_CompletedTaskIsFrozen(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	created := seedTask(t, repo, testEmployeeID, 100, task.StatusCompleted)

	_, err := svc.UpdateProgress(testContext(t), task.UpdateProgressRequest{ID: created.ID, Progress: 50})

	assert.ErrorIs(t, err, task.ErrTaskCompleted)
}

func TestUpdateProgress_RangeChecked(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	created := seedTask(t, repo, testEmployeeID, 0, task.StatusPending)

	_, err := svc.UpdateProgress(testContext(t), task.UpdateProgressRequest{ID: created.ID, Progress: 120})

	assert.ErrorIs(t, err, task.ErrInvalidProgress)
}

func TestAddComment_RequiresExistingTask(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())

	_, err := svc.AddComment(testContext(t), task.AddCommentRequest{TaskID: "missing", Body: "status?"})

	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestAddComment_AndGet(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	created := seedTask(t, repo, testEmployeeID, 0, task.StatusPending)

	comment, err := svc.AddComment(testContext(t), task.AddCommentRequest{
		TaskID: created.ID,
		Body:   "blocked on warehouse access",
	})
	require.NoError(t, err)
	assert.Equal(t, testUserID, comment.AuthorID)

	got, err := svc.Get(testContext(t), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "blocked on warehouse access", got.Comments[0].Body)
}

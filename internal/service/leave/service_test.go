package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-001"

type fakeLeaveRepo struct {
	leave.LeaveRepository

	types       map[string]leave.LeaveType
	requests    map[string]leave.LeaveRequest
	balances    map[string]leave.LeaveBalance
	overlapping bool
	nextID      int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		types:    make(map[string]leave.LeaveType),
		requests: make(map[string]leave.LeaveRequest),
		balances: make(map[string]leave.LeaveBalance),
	}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveTypeID, year)
}

func (f *fakeLeaveRepo) CreateType(_ context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	f.nextID++
	t.ID = fmt.Sprintf("type-%d", f.nextID)
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeLeaveRepo) GetTypeByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (f *fakeLeaveRepo) UpdateType(_ context.Context, t leave.LeaveType) error {
	if _, ok := f.types[t.ID]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	f.types[t.ID] = t
	return nil
}

func (f *fakeLeaveRepo) ListTypes(_ context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeLeaveRepo) CreateRequest(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRepo) GetRequestByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) UpdateRequest(_ context.Context, r leave.LeaveRequest) error {
	if _, ok := f.requests[r.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeLeaveRepo) HasOverlappingRequest(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.overlapping, nil
}

func (f *fakeLeaveRepo) GetBalance(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	if b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]; ok {
		return b, nil
	}
	t := f.types[leaveTypeID]
	return leave.LeaveBalance{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		Allocated:   t.AnnualQuota,
	}, nil
}

func (f *fakeLeaveRepo) ListBalances(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
}

func (stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id, FullName: "Jordan Lee", Email: "jordan@example.com"}, nil
}

type recordingEmailService struct {
	sent []string
}

func (r *recordingEmailService) SendWelcome(_, _, _ string) error { return nil }

func (r *recordingEmailService) SendPasswordReset(_, _, _ string) error { return nil }

func (r *recordingEmailService) SendLeaveStatusUpdate(to, _, _, status, _ string) error {
	r.sent = append(r.sent, to+":"+status)
	return nil
}

func newTestService(repo *fakeLeaveRepo, emails *recordingEmailService) leave.LeaveService {
	if emails == nil {
		emails = &recordingEmailService{}
	}
	return NewLeaveService(nil, repo, stubAttendanceRepo{}, stubEmployeeRepo{}, emails)
}

func employeeContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-001"))
	require.NoError(t, tok.Set("employee_id", testEmployeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func seedType(t *testing.T, repo *fakeLeaveRepo, quota int64) leave.LeaveType {
	t.Helper()
	created, err := repo.CreateType(context.Background(), leave.LeaveType{
		Name:        "Casual Leave",
		AnnualQuota: decimal.NewFromInt(quota),
		Paid:        true,
	})
	require.NoError(t, err)
	return created
}

func TestApply_Success(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 12)
	svc := newTestService(repo, nil)

	resp, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-08",
		Reason:      "family event",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.True(t, resp.Days.Equal(decimal.NewFromInt(3)), "days %s", resp.Days)
	require.NotNil(t, resp.LeaveTypeName)
	assert.Equal(t, "Casual Leave", *resp.LeaveTypeName)
}

func TestApply_EndBeforeStart(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 12)
	svc := newTestService(repo, nil)

	_, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   "2026-04-08",
		EndDate:     "2026-04-06",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApply_UnknownType(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), nil)

	_, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: "missing",
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-06",
	})

	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestApply_Overlapping(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 12)
	repo.overlapping = true
	svc := newTestService(repo, nil)

	_, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-08",
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestApply_InsufficientBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 2)
	svc := newTestService(repo, nil)

	_, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-10",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApply_CarriedOverExtendsBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 2)
	repo.balances[balanceKey(testEmployeeID, lt.ID, 2026)] = leave.LeaveBalance{
		EmployeeID:  testEmployeeID,
		LeaveTypeID: lt.ID,
		Year:        2026,
		Allocated:   decimal.NewFromInt(2),
		CarriedOver: decimal.NewFromInt(3),
	}
	svc := newTestService(repo, nil)

	_, err := svc.Apply(employeeContext(t), leave.ApplyLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-10",
	})

	assert.NoError(t, err)
}

func TestCancel_OnlyPending(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, nil)
	req, err := repo.CreateRequest(context.Background(), leave.LeaveRequest{
		EmployeeID: testEmployeeID,
		Status:     leave.StatusApproved,
		StartDate:  time.Now(),
		EndDate:    time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(employeeContext(t), req.ID)

	assert.ErrorIs(t, err, leave.ErrCannotCancel)
}

func TestCancel_OtherEmployeesRequestHidden(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, nil)
	req, err := repo.CreateRequest(context.Background(), leave.LeaveRequest{
		EmployeeID: "someone-else",
		Status:     leave.StatusPending,
		StartDate:  time.Now(),
		EndDate:    time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(employeeContext(t), req.ID)

	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestCancel_Success(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, nil)
	req, err := repo.CreateRequest(context.Background(), leave.LeaveRequest{
		EmployeeID: testEmployeeID,
		Status:     leave.StatusPending,
		StartDate:  time.Now(),
		EndDate:    time.Now(),
	})
	require.NoError(t, err)

	resp, err := svc.Cancel(employeeContext(t), req.ID)

	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, resp.Status)
}

func TestDecide_Reject(t *testing.T) {
	repo := newFakeLeaveRepo()
	lt := seedType(t, repo, 12)
	emails := &recordingEmailService{}
	svc := newTestService(repo, emails)
	req, err := repo.CreateRequest(context.Background(), leave.LeaveRequest{
		EmployeeID:  testEmployeeID,
		LeaveTypeID: lt.ID,
		Status:      leave.StatusPending,
		StartDate:   time.Now(),
		EndDate:     time.Now(),
	})
	require.NoError(t, err)

	reason := "project deadline"
	resp, err := svc.Decide(employeeContext(t), leave.DecideLeaveRequest{
		ID:           req.ID,
		Approve:      false,
		RejectReason: &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	require.NotNil(t, resp.RejectReason)
	assert.Equal(t, reason, *resp.RejectReason)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, "user-001", *resp.DecidedBy)
	// The employee is told about the outcome
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "jordan@example.com:"+leave.StatusRejected, emails.sent[0])
}

func TestDecide_AlreadyDecided(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo, nil)
	req, err := repo.CreateRequest(context.Background(), leave.LeaveRequest{
		EmployeeID: testEmployeeID,
		Status:     leave.StatusRejected,
		StartDate:  time.Now(),
		EndDate:    time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Decide(employeeContext(t), leave.DecideLeaveRequest{ID: req.ID, Approve: true})

	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
}

package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-001"

type fakeHolidayRepo struct {
	holiday.HolidayRepository

	requests map[string]holiday.PersonalHoliday
	quotas   map[string]holiday.Quota
	nextID   int
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{
		requests: make(map[string]holiday.PersonalHoliday),
		quotas:   make(map[string]holiday.Quota),
	}
}

func quotaKey(employeeID string, year int) string {
	return fmt.Sprintf("%s|%d", employeeID, year)
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.PersonalHoliday) (holiday.PersonalHoliday, error) {
	f.nextID++
	h.ID = fmt.Sprintf("hol-%d", f.nextID)
	h.CreatedAt = time.Now()
	f.requests[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string) (holiday.PersonalHoliday, error) {
	h, ok := f.requests[id]
	if !ok {
		return holiday.PersonalHoliday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) Update(_ context.Context, h holiday.PersonalHoliday) error {
	if _, ok := f.requests[h.ID]; !ok {
		return holiday.ErrHolidayNotFound
	}
	f.requests[h.ID] = h
	return nil
}

func (f *fakeHolidayRepo) HasRequestOnDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, h := range f.requests {
		if h.EmployeeID == employeeID && h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayRepo) GetQuota(_ context.Context, employeeID string, year int) (*holiday.Quota, error) {
	q, ok := f.quotas[quotaKey(employeeID, year)]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func employeeContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-001"))
	require.NoError(t, tok.Set("employee_id", testEmployeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(repo *fakeHolidayRepo) holiday.HolidayService {
	return NewHolidayService(nil, repo, nil)
}

func setQuota(repo *fakeHolidayRepo, year int, allocated, used int64) {
	repo.quotas[quotaKey(testEmployeeID, year)] = holiday.Quota{
		EmployeeID: testEmployeeID,
		Year:       year,
		Allocated:  decimal.NewFromInt(allocated),
		Used:       decimal.NewFromInt(used),
	}
}

func TestApply_Success(t *testing.T) {
	repo := newFakeHolidayRepo()
	setQuota(repo, 2026, 3, 0)
	svc := newTestService(repo)

	resp, err := svc.Apply(employeeContext(t), holiday.ApplyHolidayRequest{
		Date:   "2026-06-12",
		Reason: "wedding anniversary",
	})

	require.NoError(t, err)
	assert.Equal(t, holiday.StatusPending, resp.Status)
	assert.Equal(t, "2026-06-12", resp.Date)
}

func TestApply_DuplicateDate(t *testing.T) {
	repo := newFakeHolidayRepo()
	setQuota(repo, 2026, 3, 0)
	svc := newTestService(repo)
	ctx := employeeContext(t)

	_, err := svc.Apply(ctx, holiday.ApplyHolidayRequest{Date: "2026-06-12", Reason: "anniversary"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, holiday.ApplyHolidayRequest{Date: "2026-06-12", Reason: "again"})
	assert.ErrorIs(t, err, holiday.ErrAlreadyRequested)
}

func TestApply_QuotaNotConfigured(t *testing.T) {
	svc := newTestService(newFakeHolidayRepo())

	_, err := svc.Apply(employeeContext(t), holiday.ApplyHolidayRequest{Date: "2026-06-12"})

	assert.ErrorIs(t, err, holiday.ErrQuotaNotConfigured)
}

func TestApply_QuotaExhausted(t *testing.T) {
	repo := newFakeHolidayRepo()
	setQuota(repo, 2026, 3, 3)
	svc := newTestService(repo)

	_, err := svc.Apply(employeeContext(t), holiday.ApplyHolidayRequest{Date: "2026-06-12"})

	assert.ErrorIs(t, err, holiday.ErrInsufficientQuota)
}

func TestApply_QuotaCheckedAgainstRequestYear(t *testing.T) {
	repo := newFakeHolidayRepo()
	// Quota exists only for 2026; a 2027 date must be rejected
	setQuota(repo, 2026, 3, 0)
	svc := newTestService(repo)

	_, err := svc.Apply(employeeContext(t), holiday.ApplyHolidayRequest{Date: "2027-01-05"})

	assert.ErrorIs(t, err, holiday.ErrQuotaNotConfigured)
}

func TestDecide_Reject(t *testing.T) {
	repo := newFakeHolidayRepo()
	svc := newTestService(repo)
	created, err := repo.Create(context.Background(), holiday.PersonalHoliday{
		EmployeeID: testEmployeeID,
		Date:       time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:     holiday.StatusPending,
	})
	require.NoError(t, err)

	resp, err := svc.Decide(employeeContext(t), holiday.DecideHolidayRequest{ID: created.ID, Approve: false})

	require.NoError(t, err)
	assert.Equal(t, holiday.StatusRejected, resp.Status)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, "user-001", *resp.DecidedBy)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	repo := newFakeHolidayRepo()
	svc := newTestService(repo)
	created, err := repo.Create(context.Background(), holiday.PersonalHoliday{
		EmployeeID: testEmployeeID,
		Date:       time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:     holiday.StatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.Decide(employeeContext(t), holiday.DecideHolidayRequest{ID: created.ID, Approve: false})

	assert.ErrorIs(t, err, holiday.ErrAlreadyDecided)
}

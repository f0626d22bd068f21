package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmployeeID = "emp-001"
	testUserID     = "user-001"

	officeLat = -6.2
	officeLon = 106.816666
)

func claimsContext(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	tok := jwt.New()
	for k, v := range claims {
		require.NoError(t, tok.Set(k, v))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func employeeContext(t *testing.T) context.Context {
	return claimsContext(t, map[string]interface{}{
		"user_id":     testUserID,
		"employee_id": testEmployeeID,
	})
}

type fakeAttendanceRepo struct {
	records     map[string]attendance.Attendance
	outOfRange  []attendance.OutOfRangeLog
	wfhRequests map[string]attendance.WFHRequest
	approvedWFH map[string]bool
	nextID      int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records:     make(map[string]attendance.Attendance),
		wfhRequests: make(map[string]attendance.WFHRequest),
		approvedWFH: make(map[string]bool),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if dayKey(att.EmployeeID, att.Date) == dayKey(employeeID, date) {
			copied := att
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date.Year() == year && att.Date.Month() == month {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountByStatusOnDate(_ context.Context, _ time.Time) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeAttendanceRepo) CountWFHOnDate(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) CreateOutOfRangeLog(_ context.Context, log attendance.OutOfRangeLog) error {
	f.outOfRange = append(f.outOfRange, log)
	return nil
}

func (f *fakeAttendanceRepo) ListOutOfRangeLogs(_ context.Context, _, _ time.Time) ([]attendance.OutOfRangeLog, error) {
	return f.outOfRange, nil
}

func (f *fakeAttendanceRepo) CreateWFHRequest(_ context.Context, req attendance.WFHRequest) (attendance.WFHRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("wfh-%d", f.nextID)
	f.wfhRequests[req.ID] = req
	return req, nil
}

func (f *fakeAttendanceRepo) GetWFHRequestByID(_ context.Context, id string) (attendance.WFHRequest, error) {
	req, ok := f.wfhRequests[id]
	if !ok {
		return attendance.WFHRequest{}, attendance.ErrWFHRequestNotFound
	}
	return req, nil
}

func (f *fakeAttendanceRepo) GetApprovedWFH(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return f.approvedWFH[dayKey(employeeID, date)], nil
}

func (f *fakeAttendanceRepo) HasWFHRequest(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, req := range f.wfhRequests {
		if dayKey(req.EmployeeID, req.Date) == dayKey(employeeID, date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) ListWFHRequests(_ context.Context, employeeID *string, status *string) ([]attendance.WFHRequest, error) {
	var out []attendance.WFHRequest
	for _, req := range f.wfhRequests {
		if employeeID != nil && req.EmployeeID != *employeeID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) UpdateWFHRequest(_ context.Context, req attendance.WFHRequest) error {
	if _, ok := f.wfhRequests[req.ID]; !ok {
		return attendance.ErrWFHRequestNotFound
	}
	f.wfhRequests[req.ID] = req
	return nil
}

type fakeGeofenceRepo struct {
	settings geofence.Settings
	office   *geofence.OfficeLocation
}

func (f *fakeGeofenceRepo) CreateOffice(_ context.Context, office geofence.OfficeLocation) (geofence.OfficeLocation, error) {
	return office, nil
}

func (f *fakeGeofenceRepo) GetOfficeByID(_ context.Context, _ string) (geofence.OfficeLocation, error) {
	if f.office == nil {
		return geofence.OfficeLocation{}, geofence.ErrOfficeNotFound
	}
	return *f.office, nil
}

func (f *fakeGeofenceRepo) GetPrimaryOffice(_ context.Context) (*geofence.OfficeLocation, error) {
	return f.office, nil
}

func (f *fakeGeofenceRepo) UpdateOffice(_ context.Context, _ geofence.OfficeLocation) error { return nil }
func (f *fakeGeofenceRepo) DeleteOffice(_ context.Context, _ string) error                  { return nil }
func (f *fakeGeofenceRepo) ListOffices(_ context.Context) ([]geofence.OfficeLocation, error) {
	return nil, nil
}

func (f *fakeGeofenceRepo) GetSettings(_ context.Context) (geofence.Settings, error) {
	return f.settings, nil
}

func (f *fakeGeofenceRepo) UpdateSettings(_ context.Context, enabled bool) (geofence.Settings, error) {
	f.settings.Enabled = enabled
	return f.settings, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishCounters(_ context.Context) error { return nil }

func newTestService(attRepo *fakeAttendanceRepo, geoRepo *fakeGeofenceRepo) attendance.AttendanceService {
	return NewAttendanceService(attRepo, geoRepo, noopPublisher{})
}

func fencedOffice() *geofence.OfficeLocation {
	return &geofence.OfficeLocation{
		ID:           "office-1",
		Name:         "HQ",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 500,
	}
}

func ptr[T any](v T) *T { return &v }

func TestCheckIn_InsideGeofence(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: true}, office: fencedOffice()}
	svc := newTestService(attRepo, geoRepo)

	resp, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{
		Latitude:  ptr(officeLat),
		Longitude: ptr(officeLon),
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, attendance.ModeOffice, resp.WorkMode)
	require.NotNil(t, resp.DistanceMeters)
	assert.Equal(t, 0, *resp.DistanceMeters)
	assert.NotNil(t, resp.CheckInTime)
}

func TestCheckIn_OutsideGeofence(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: true}, office: fencedOffice()}
	svc := newTestService(attRepo, geoRepo)

	// Roughly 11km north of the office
	_, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{
		Latitude:  ptr(officeLat + 0.1),
		Longitude: ptr(officeLon),
	})

	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	// The rejection carries the figures behind the decision
	var geoErr *attendance.OutsideGeofenceError
	require.ErrorAs(t, err, &geoErr)
	assert.Greater(t, geoErr.DistanceMeters, 500)
	assert.Equal(t, 500, geoErr.RadiusMeters)

	require.Len(t, attRepo.outOfRange, 1)
	assert.Equal(t, testEmployeeID, attRepo.outOfRange[0].EmployeeID)
	assert.Equal(t, geoErr.DistanceMeters, attRepo.outOfRange[0].DistanceMeters)
}

func TestCheckIn_MissingCoordinates(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: true}, office: fencedOffice()}
	svc := newTestService(attRepo, geoRepo)

	_, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{})

	assert.ErrorIs(t, err, attendance.ErrMissingCoordinates)
}

func TestCheckIn_NoOfficeConfigured(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: true}}
	svc := newTestService(attRepo, geoRepo)

	_, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{
		Latitude:  ptr(officeLat),
		Longitude: ptr(officeLon),
	})

	assert.ErrorIs(t, err, attendance.ErrNoOfficeConfigured)
}

func TestCheckIn_GeofenceDisabled(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: false}}
	svc := newTestService(attRepo, geoRepo)

	// No coordinates required when the fence is off
	resp, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.ModeOffice, resp.WorkMode)
	assert.Nil(t, resp.DistanceMeters)
}

func TestCheckIn_ApprovedWFHBypassesGeofence(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	attRepo.approvedWFH[dayKey(testEmployeeID, today)] = true
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: true}, office: fencedOffice()}
	svc := newTestService(attRepo, geoRepo)

	resp, err := svc.CheckIn(employeeContext(t), attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.ModeWFH, resp.WorkMode)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: false}}
	svc := newTestService(attRepo, geoRepo)
	ctx := employeeContext(t)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{}
	svc := newTestService(attRepo, geoRepo)

	_, err := svc.CheckOut(employeeContext(t), attendance.CheckOutRequest{})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_FullDayStaysPresent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{}
	svc := newTestService(attRepo, geoRepo)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	checkIn := now.Add(-8 * time.Hour)
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:  testEmployeeID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	resp, err := svc.CheckOut(employeeContext(t), attendance.CheckOutRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.WorkingHours)
	assert.InDelta(t, 8.0, *resp.WorkingHours, 0.1)
}

func TestCheckOut_ShortDayBecomesHalfDay(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{}
	svc := newTestService(attRepo, geoRepo)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	checkIn := now.Add(-2 * time.Hour)
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:  testEmployeeID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	resp, err := svc.CheckOut(employeeContext(t), attendance.CheckOutRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{}
	svc := newTestService(attRepo, geoRepo)
	ctx := employeeContext(t)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	checkIn := now.Add(-8 * time.Hour)
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:  testEmployeeID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestTodayStatus_Transitions(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{settings: geofence.Settings{Enabled: false}}
	svc := newTestService(attRepo, geoRepo)
	ctx := employeeContext(t)

	status, err := svc.TodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, status.State)
	assert.True(t, status.CanCheckIn)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	status, err = svc.TodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, status.State)
	assert.True(t, status.CanCheckOut)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	status, err = svc.TodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedOut, status.State)
	assert.False(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
}

func TestMyMonthlySummary(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	geoRepo := &fakeGeofenceRepo{}
	svc := newTestService(attRepo, geoRepo)
	ctx := context.Background()

	base := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	in := base.Add(9 * time.Hour)
	out := base.Add(17 * time.Hour)
	seed := []attendance.Attendance{
		{EmployeeID: testEmployeeID, Date: base, Status: attendance.StatusPresent, WorkMode: attendance.ModeOffice, CheckInTime: &in, CheckOutTime: &out},
		{EmployeeID: testEmployeeID, Date: base.AddDate(0, 0, 1), Status: attendance.StatusPresent, WorkMode: attendance.ModeWFH},
		{EmployeeID: testEmployeeID, Date: base.AddDate(0, 0, 2), Status: attendance.StatusHalfDay, WorkMode: attendance.ModeOffice},
		{EmployeeID: testEmployeeID, Date: base.AddDate(0, 0, 3), Status: attendance.StatusOnLeave},
		{EmployeeID: testEmployeeID, Date: base.AddDate(0, 0, 4), Status: attendance.StatusAbsent},
	}
	for _, att := range seed {
		_, err := attRepo.Create(ctx, att)
		require.NoError(t, err)
	}

	summary, err := svc.MyMonthlySummary(employeeContext(t), "2026-03")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.HalfDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 1, summary.LeaveDays)
	assert.Equal(t, 1, summary.WFHDays)
	assert.Equal(t, 4, summary.WorkingDays)
	assert.InDelta(t, 8.0, summary.CheckedHours, 0.01)
}

func TestMyMonthlySummary_InvalidMonth(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), &fakeGeofenceRepo{})

	_, err := svc.MyMonthlySummary(employeeContext(t), "March 2026")

	assert.Error(t, err)
}

package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	statusCounts map[string]int
	wfh          int
}

func (s *stubAttendanceRepo) CountByStatusOnDate(_ context.Context, _ time.Time) (map[string]int, error) {
	return s.statusCounts, nil
}

func (s *stubAttendanceRepo) CountWFHOnDate(_ context.Context, _ time.Time) (int, error) {
	return s.wfh, nil
}

type stubLeaveRepo struct {
	leave.LeaveRepository
	onLeave int
}

func (s *stubLeaveRepo) CountOnLeaveOnDate(_ context.Context, _ time.Time) (int, error) {
	return s.onLeave, nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	active int64
}

func (s *stubEmployeeRepo) CountActive(_ context.Context) (int64, error) {
	return s.active, nil
}

func TestCounters_DerivesAbsentFromHeadcount(t *testing.T) {
	svc := NewDashboardService(
		&stubAttendanceRepo{
			statusCounts: map[string]int{
				attendance.StatusPresent: 12,
				attendance.StatusHalfDay: 2,
			},
			wfh: 3,
		},
		&stubLeaveRepo{onLeave: 1},
		&stubEmployeeRepo{active: 20},
		sse.NewHub(),
	)

	counters, err := svc.Counters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, counters.Present)
	assert.Equal(t, 2, counters.HalfDay)
	assert.Equal(t, 1, counters.OnLeave)
	assert.Equal(t, 3, counters.WFH)
	assert.Equal(t, 20, counters.Total)
	// 20 active minus 12 present, 2 half day, 1 on leave
	assert.Equal(t, 5, counters.Absent)
	assert.NotEmpty(t, counters.AsOf)
}

func TestCounters_AbsentNeverNegative(t *testing.T) {
	svc := NewDashboardService(
		&stubAttendanceRepo{
			statusCounts: map[string]int{attendance.StatusPresent: 8},
		},
		&stubLeaveRepo{onLeave: 0},
		&stubEmployeeRepo{active: 5},
		sse.NewHub(),
	)

	counters, err := svc.Counters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, counters.Absent)
}

func TestPublishCounters_Broadcasts(t *testing.T) {
	hub := sse.NewHub()
	ch, unsubscribe := hub.Subscribe(sse.TopicDashboardCounters)
	defer unsubscribe()

	svc := NewDashboardService(
		&stubAttendanceRepo{statusCounts: map[string]int{attendance.StatusPresent: 1}},
		&stubLeaveRepo{},
		&stubEmployeeRepo{active: 1},
		hub,
	)

	require.NoError(t, svc.PublishCounters(context.Background()))

	select {
	case event := <-ch:
		assert.Equal(t, "counters", event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a counters event on the stream")
	}
}

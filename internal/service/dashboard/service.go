package dashboard

import (
	"context"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/dashboard"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/pkg/sse"
)

type DashboardServiceImpl struct {
	attendanceRepository attendance.AttendanceRepository
	leaveRepository      leave.LeaveRepository
	employeeRepository   employee.EmployeeRepository
	hub                  *sse.Hub
}

func NewDashboardService(
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	hub *sse.Hub,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepository: attendanceRepository,
		leaveRepository:      leaveRepository,
		employeeRepository:   employeeRepository,
		hub:                  hub,
	}
}

// Counters implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Counters(ctx context.Context) (dashboard.CountersResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	statusCounts, err := s.attendanceRepository.CountByStatusOnDate(ctx, today)
	if err != nil {
		return dashboard.CountersResponse{}, err
	}

	wfh, err := s.attendanceRepository.CountWFHOnDate(ctx, today)
	if err != nil {
		return dashboard.CountersResponse{}, err
	}

	onLeave, err := s.leaveRepository.CountOnLeaveOnDate(ctx, today)
	if err != nil {
		return dashboard.CountersResponse{}, err
	}

	totalActive, err := s.employeeRepository.CountActive(ctx)
	if err != nil {
		return dashboard.CountersResponse{}, err
	}
	total := int(totalActive)

	present := statusCounts[attendance.StatusPresent]
	halfDay := statusCounts[attendance.StatusHalfDay]

	// Employees with no record today count as absent
	absent := total - present - halfDay - onLeave
	if absent < 0 {
		absent = 0
	}

	return dashboard.CountersResponse{
		Present: present,
		Absent:  absent,
		HalfDay: halfDay,
		OnLeave: onLeave,
		WFH:     wfh,
		Total:   total,
		AsOf:    now.Format(time.RFC3339),
	}, nil
}

// PublishCounters implements dashboard.DashboardService.
func (s *DashboardServiceImpl) PublishCounters(ctx context.Context) error {
	counters, err := s.Counters(ctx)
	if err != nil {
		return err
	}

	s.hub.Publish(sse.TopicDashboardCounters, "counters", counters)
	return nil
}

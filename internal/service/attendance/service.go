package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/geofence"
	"github.com/emsuite/ems-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
)

// Employees who work less than this before checking out are marked HALF_DAY.
const halfDayCutoff = 4 * time.Hour

// CounterPublisher pushes refreshed dashboard counters to stream subscribers.
// Implemented by the dashboard service; declared here to keep the dependency
// one-directional.
type CounterPublisher interface {
	PublishCounters(ctx context.Context) error
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	geofenceRepository geofence.GeofenceRepository
	counters           CounterPublisher
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	geofenceRepository geofence.GeofenceRepository,
	counters CounterPublisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		geofenceRepository:   geofenceRepository,
		counters:             counters,
	}
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

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		EmployeeCode:      att.EmployeeCode,
		Date:              att.Date.Format("2006-01-02"),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		DistanceMeters:    att.DistanceMeters,
		WorkMode:          att.WorkMode,
		Status:            att.Status,
		Note:              att.Note,
	}
	if att.CheckInTime != nil {
		s := att.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &s
	}
	if att.CheckOutTime != nil {
		s := att.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	if att.CheckInTime != nil && att.CheckOutTime != nil {
		hours := att.CheckOutTime.Sub(*att.CheckInTime).Hours()
		resp.WorkingHours = &hours
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := today()

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil && existing.CheckInTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	workMode := attendance.ModeOffice
	var distanceMeters *int

	approvedWFH, err := s.AttendanceRepository.GetApprovedWFH(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if approvedWFH {
		// Approved WFH bypasses the geofence; coordinates become optional
		workMode = attendance.ModeWFH
	} else {
		settings, err := s.geofenceRepository.GetSettings(ctx)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		if settings.Enabled {
			if req.Latitude == nil || req.Longitude == nil {
				return attendance.AttendanceResponse{}, attendance.ErrMissingCoordinates
			}

			office, err := s.geofenceRepository.GetPrimaryOffice(ctx)
			if err != nil {
				return attendance.AttendanceResponse{}, err
			}
			if office == nil {
				return attendance.AttendanceResponse{}, attendance.ErrNoOfficeConfigured
			}

			eligibility := geo.WithinRadius(*req.Latitude, *req.Longitude, office.Latitude, office.Longitude, float64(office.RadiusMeters))
			if !eligibility.Within {
				logErr := s.AttendanceRepository.CreateOutOfRangeLog(ctx, attendance.OutOfRangeLog{
					EmployeeID:     employeeID,
					Latitude:       *req.Latitude,
					Longitude:      *req.Longitude,
					DistanceMeters: eligibility.DistanceMeters,
					RadiusMeters:   office.RadiusMeters,
					OfficeID:       &office.ID,
					AttemptedAt:    time.Now(),
				})
				if logErr != nil {
					slog.Error("failed to record out-of-range attempt", "error", logErr)
				}
				return attendance.AttendanceResponse{}, &attendance.OutsideGeofenceError{
					DistanceMeters: eligibility.DistanceMeters,
					RadiusMeters:   office.RadiusMeters,
				}
			}
			distanceMeters = &eligibility.DistanceMeters
		}
	}

	now := time.Now()
	att := attendance.Attendance{
		EmployeeID:       employeeID,
		Date:             date,
		CheckInTime:      &now,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		DistanceMeters:   distanceMeters,
		WorkMode:         workMode,
		Status:           attendance.StatusPresent,
	}

	created, err := s.AttendanceRepository.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.counters.PublishCounters(ctx); err != nil {
		slog.Warn("failed to publish dashboard counters", "error", err)
	}

	return toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att == nil || att.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := time.Now()
	att.CheckOutTime = &now
	att.CheckOutLatitude = req.Latitude
	att.CheckOutLongitude = req.Longitude

	// Short days are downgraded at checkout
	if now.Sub(*att.CheckInTime) < halfDayCutoff {
		att.Status = attendance.StatusHalfDay
	}

	if err := s.AttendanceRepository.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.counters.PublishCounters(ctx); err != nil {
		slog.Warn("failed to publish dashboard counters", "error", err)
	}

	return toResponse(*att), nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	date := today()

	att, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	approvedWFH, err := s.AttendanceRepository.GetApprovedWFH(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	response := attendance.TodayStatusResponse{HasApprovedWFH: approvedWFH}
	switch {
	case att == nil || att.CheckInTime == nil:
		response.State = attendance.StateNotCheckedIn
		response.CanCheckIn = true
	case att.CheckOutTime == nil:
		response.State = attendance.StateCheckedIn
		response.CanCheckOut = true
	default:
		response.State = attendance.StateCheckedOut
	}

	if att != nil {
		resp := toResponse(*att)
		response.TodayAttendance = &resp
	}

	return response, nil
}

// MyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.list(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, toResponse(att))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// MyMonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyMonthlySummary(ctx context.Context, month string) (attendance.MonthlySummaryResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndMonth(ctx, employeeID, parsed.Year(), parsed.Month())
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	summary := attendance.MonthlySummaryResponse{Month: month}
	for _, att := range records {
		switch att.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusOnLeave:
			summary.LeaveDays++
		}
		if att.WorkMode == attendance.ModeWFH {
			summary.WFHDays++
		}
		if att.CheckInTime != nil && att.CheckOutTime != nil {
			summary.CheckedHours += att.CheckOutTime.Sub(*att.CheckInTime).Hours()
		}
	}
	summary.WorkingDays = summary.PresentDays + summary.HalfDays + summary.LeaveDays

	return summary, nil
}

// ManualUpdate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManualUpdate(ctx context.Context, req attendance.ManualUpdateRequest) (attendance.AttendanceResponse, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Status != nil {
		att.Status = *req.Status
	}
	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid check_in_time: %w", err)
		}
		att.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid check_out_time: %w", err)
		}
		att.CheckOutTime = &t
	}
	if req.Note != nil {
		att.Note = req.Note
	}

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.counters.PublishCounters(ctx); err != nil {
		slog.Warn("failed to publish dashboard counters", "error", err)
	}

	return toResponse(att), nil
}

// OutOfRangeLogs implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) OutOfRangeLogs(ctx context.Context, startDate, endDate string) ([]attendance.OutOfRangeLogResponse, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}
	end = end.AddDate(0, 0, 1) // inclusive end date

	logs, err := s.AttendanceRepository.ListOutOfRangeLogs(ctx, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.OutOfRangeLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, attendance.OutOfRangeLogResponse{
			ID:             log.ID,
			EmployeeID:     log.EmployeeID,
			EmployeeName:   log.EmployeeName,
			Latitude:       log.Latitude,
			Longitude:      log.Longitude,
			DistanceMeters: log.DistanceMeters,
			RadiusMeters:   log.RadiusMeters,
			AttemptedAt:    log.AttemptedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}

func toWFHResponse(req attendance.WFHRequest) attendance.WFHRequestResponse {
	resp := attendance.WFHRequestResponse{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Date:         req.Date.Format("2006-01-02"),
		Reason:       req.Reason,
		Status:       req.Status,
		DecidedBy:    req.DecidedBy,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		s := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

// RequestWFH implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RequestWFH(ctx context.Context, req attendance.CreateWFHRequest) (attendance.WFHRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.WFHRequestResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.WFHRequestResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	exists, err := s.AttendanceRepository.HasWFHRequest(ctx, employeeID, date)
	if err != nil {
		return attendance.WFHRequestResponse{}, err
	}
	if exists {
		return attendance.WFHRequestResponse{}, attendance.ErrWFHAlreadyRequested
	}

	created, err := s.AttendanceRepository.CreateWFHRequest(ctx, attendance.WFHRequest{
		EmployeeID: employeeID,
		Date:       date,
		Reason:     req.Reason,
		Status:     attendance.WFHPending,
	})
	if err != nil {
		return attendance.WFHRequestResponse{}, err
	}

	return toWFHResponse(created), nil
}

// MyWFHRequests implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyWFHRequests(ctx context.Context) ([]attendance.WFHRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.AttendanceRepository.ListWFHRequests(ctx, &employeeID, nil)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.WFHRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toWFHResponse(req))
	}

	return responses, nil
}

// ListWFHRequests implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListWFHRequests(ctx context.Context, status string) ([]attendance.WFHRequestResponse, error) {
	var statusFilter *string
	if status != "" {
		statusFilter = &status
	}

	requests, err := s.AttendanceRepository.ListWFHRequests(ctx, nil, statusFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.WFHRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toWFHResponse(req))
	}

	return responses, nil
}

// DecideWFH implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DecideWFH(ctx context.Context, req attendance.DecideWFHRequest) (attendance.WFHRequestResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.WFHRequestResponse{}, err
	}

	wfhRequest, err := s.AttendanceRepository.GetWFHRequestByID(ctx, req.ID)
	if err != nil {
		return attendance.WFHRequestResponse{}, err
	}
	if wfhRequest.Status != attendance.WFHPending {
		return attendance.WFHRequestResponse{}, attendance.ErrWFHAlreadyDecided
	}

	now := time.Now()
	if req.Approve {
		wfhRequest.Status = attendance.WFHApproved
	} else {
		wfhRequest.Status = attendance.WFHRejected
	}
	wfhRequest.DecidedBy = &userID
	wfhRequest.DecidedAt = &now

	if err := s.AttendanceRepository.UpdateWFHRequest(ctx, wfhRequest); err != nil {
		return attendance.WFHRequestResponse{}, err
	}

	return toWFHResponse(wfhRequest), nil
}

package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/emsuite/ems-backend-go/internal/pkg/email"
	"github.com/emsuite/ems-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	attendanceRepository attendance.AttendanceRepository
	employeeRepository   employee.EmployeeRepository
	emailService         email.EmailService
}

func NewLeaveService(
	db *database.DB,
	leaveRepository leave.LeaveRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	emailService email.EmailService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                   db,
		LeaveRepository:      leaveRepository,
		attendanceRepository: attendanceRepository,
		employeeRepository:   employeeRepository,
		emailService:         emailService,
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

func toTypeResponse(t leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:              t.ID,
		Name:            t.Name,
		AnnualQuota:     t.AnnualQuota,
		Paid:            t.Paid,
		CarryForward:    t.CarryForward,
		MaxCarryForward: t.MaxCarryForward,
	}
}

func toRequestResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		EmployeeCode:  r.EmployeeCode,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Days:          r.Days,
		Reason:        r.Reason,
		Status:        r.Status,
		DecidedBy:     r.DecidedBy,
		RejectReason:  r.RejectReason,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

func toBalanceResponse(b leave.LeaveBalance) leave.BalanceResponse {
	return leave.BalanceResponse{
		LeaveTypeID:   b.LeaveTypeID,
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		Allocated:     b.Allocated,
		Used:          b.Used,
		CarriedOver:   b.CarriedOver,
		Available:     b.Available(),
	}
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	created, err := s.LeaveRepository.CreateType(ctx, leave.LeaveType{
		Name:            req.Name,
		AnnualQuota:     req.AnnualQuota,
		Paid:            req.Paid,
		CarryForward:    req.CarryForward,
		MaxCarryForward: req.MaxCarryForward,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return toTypeResponse(created), nil
}

// UpdateType implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	t, err := s.LeaveRepository.GetTypeByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.AnnualQuota != nil {
		t.AnnualQuota = *req.AnnualQuota
	}
	if req.Paid != nil {
		t.Paid = *req.Paid
	}
	if req.CarryForward != nil {
		t.CarryForward = *req.CarryForward
	}
	if req.MaxCarryForward != nil {
		t.MaxCarryForward = *req.MaxCarryForward
	}

	if err := s.LeaveRepository.UpdateType(ctx, t); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return toTypeResponse(t), nil
}

// DeleteType implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteType(ctx context.Context, id string) error {
	return s.LeaveRepository.DeleteType(ctx, id)
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveRepository.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, toTypeResponse(t))
	}

	return responses, nil
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	leaveType, err := s.LeaveRepository.GetTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	overlapping, err := s.LeaveRepository.HasOverlappingRequest(ctx, employeeID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	days := decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)

	// Balance is checked against the start date's year
	balance, err := s.LeaveRepository.GetBalance(ctx, employeeID, req.LeaveTypeID, start.Year())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if balance.Available().LessThan(days) {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	created, err := s.LeaveRepository.CreateRequest(ctx, leave.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	return toRequestResponse(created), nil
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRepository.GetRequestByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrCannotCancel
	}

	request.Status = leave.StatusCancelled
	if err := s.LeaveRepository.UpdateRequest(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	requests, total, err := s.LeaveRepository.ListRequests(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toRequestResponse(r))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return leave.ListLeaveRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.list(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	return s.list(ctx, filter)
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRepository.GetRequestByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyDecided
	}

	now := time.Now()
	request.DecidedBy = &userID
	request.DecidedAt = &now

	if !req.Approve {
		request.Status = leave.StatusRejected
		request.RejectReason = req.RejectReason
		if err := s.LeaveRepository.UpdateRequest(ctx, request); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		s.notifyDecision(ctx, request)
		return toRequestResponse(request), nil
	}

	request.Status = leave.StatusApproved
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.LeaveRepository.UpdateRequest(txCtx, request); err != nil {
			return err
		}
		if err := s.LeaveRepository.AddUsed(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.Days); err != nil {
			return err
		}
		return s.markAttendanceOnLeave(txCtx, request)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notifyDecision(ctx, request)
	return toRequestResponse(request), nil
}

// notifyDecision emails the employee about the outcome. Delivery failures
// are logged, never surfaced to the approver.
func (s *LeaveServiceImpl) notifyDecision(ctx context.Context, request leave.LeaveRequest) {
	emp, err := s.employeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Warn("failed to load employee for leave decision email", "employee_id", request.EmployeeID, "error", err)
		return
	}

	leaveTypeName := request.LeaveTypeID
	if t, err := s.LeaveRepository.GetTypeByID(ctx, request.LeaveTypeID); err == nil {
		leaveTypeName = t.Name
	}

	dateRange := fmt.Sprintf("%s to %s", request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
	if err := s.emailService.SendLeaveStatusUpdate(emp.Email, emp.FullName, leaveTypeName, request.Status, dateRange); err != nil {
		slog.Warn("failed to send leave decision email", "employee_id", request.EmployeeID, "error", err)
	}
}

// markAttendanceOnLeave stamps every covered day ON_LEAVE so attendance
// reports and payroll see the leave without a separate join.
func (s *LeaveServiceImpl) markAttendanceOnLeave(ctx context.Context, request leave.LeaveRequest) error {
	for d := request.StartDate; !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
		existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, request.EmployeeID, d)
		if err != nil {
			return err
		}
		if existing == nil {
			_, err = s.attendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: request.EmployeeID,
				Date:       d,
				Status:     attendance.StatusOnLeave,
			})
			if err != nil {
				return err
			}
			continue
		}
		existing.Status = attendance.StatusOnLeave
		if err := s.attendanceRepository.Update(ctx, *existing); err != nil {
			return err
		}
	}
	return nil
}

// MyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) MyBalances(ctx context.Context, year int) ([]leave.BalanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.Balances(ctx, employeeID, year)
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	balances, err := s.LeaveRepository.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}

	return responses, nil
}

// CarryForward implements leave.LeaveService.
func (s *LeaveServiceImpl) CarryForward(ctx context.Context, fromYear int) (leave.CarryForwardResultResponse, error) {
	types, err := s.LeaveRepository.ListTypes(ctx)
	if err != nil {
		return leave.CarryForwardResultResponse{}, err
	}
	typesByID := make(map[string]leave.LeaveType, len(types))
	for _, t := range types {
		typesByID[t.ID] = t
	}

	balances, err := s.LeaveRepository.ListAllBalances(ctx, fromYear)
	if err != nil {
		return leave.CarryForwardResultResponse{}, err
	}

	result := leave.CarryForwardResultResponse{FromYear: fromYear, ToYear: fromYear + 1}
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, b := range balances {
			t, ok := typesByID[b.LeaveTypeID]
			if !ok || !t.CarryForward {
				continue
			}

			amount := b.Available()
			if amount.IsNegative() {
				continue
			}
			if amount.GreaterThan(t.MaxCarryForward) {
				amount = t.MaxCarryForward
			}

			if err := s.LeaveRepository.SetCarriedOver(txCtx, b.EmployeeID, b.LeaveTypeID, fromYear+1, amount); err != nil {
				return err
			}
			result.Processed++
		}
		return nil
	})
	if err != nil {
		return leave.CarryForwardResultResponse{}, err
	}

	return result, nil
}

package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
	"github.com/emsuite/ems-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type HolidayServiceImpl struct {
	db *database.DB
	holiday.HolidayRepository
	employeeRepository employee.EmployeeRepository
}

func NewHolidayService(
	db *database.DB,
	holidayRepository holiday.HolidayRepository,
	employeeRepository employee.EmployeeRepository,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                 db,
		HolidayRepository:  holidayRepository,
		employeeRepository: employeeRepository,
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

func toResponse(h holiday.PersonalHoliday) holiday.HolidayResponse {
	resp := holiday.HolidayResponse{
		ID:           h.ID,
		EmployeeID:   h.EmployeeID,
		EmployeeName: h.EmployeeName,
		Date:         h.Date.Format("2006-01-02"),
		Reason:       h.Reason,
		Status:       h.Status,
		DecidedBy:    h.DecidedBy,
		CreatedAt:    h.CreatedAt.Format(time.RFC3339),
	}
	if h.DecidedAt != nil {
		s := h.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

func toQuotaResponse(q holiday.Quota) holiday.QuotaResponse {
	return holiday.QuotaResponse{
		EmployeeID:   q.EmployeeID,
		EmployeeName: q.EmployeeName,
		Year:         q.Year,
		Allocated:    q.Allocated,
		Used:         q.Used,
		Available:    q.Available(),
	}
}

// Apply implements holiday.HolidayService.
func (s *HolidayServiceImpl) Apply(ctx context.Context, req holiday.ApplyHolidayRequest) (holiday.HolidayResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	exists, err := s.HolidayRepository.HasRequestOnDate(ctx, employeeID, date)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if exists {
		return holiday.HolidayResponse{}, holiday.ErrAlreadyRequested
	}

	quota, err := s.HolidayRepository.GetQuota(ctx, employeeID, date.Year())
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if quota == nil {
		return holiday.HolidayResponse{}, holiday.ErrQuotaNotConfigured
	}
	if quota.Available().LessThan(decimal.NewFromInt(1)) {
		return holiday.HolidayResponse{}, holiday.ErrInsufficientQuota
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.PersonalHoliday{
		EmployeeID: employeeID,
		Date:       date,
		Reason:     req.Reason,
		Status:     holiday.StatusPending,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return toResponse(created), nil
}

// MyRequests implements holiday.HolidayService.
func (s *HolidayServiceImpl) MyRequests(ctx context.Context) ([]holiday.HolidayResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.HolidayRepository.List(ctx, &employeeID, nil)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(requests))
	for _, h := range requests {
		responses = append(responses, toResponse(h))
	}

	return responses, nil
}

// MyQuota implements holiday.HolidayService.
func (s *HolidayServiceImpl) MyQuota(ctx context.Context, year int) (holiday.QuotaResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return holiday.QuotaResponse{}, err
	}
	if year == 0 {
		year = time.Now().Year()
	}

	quota, err := s.HolidayRepository.GetQuota(ctx, employeeID, year)
	if err != nil {
		return holiday.QuotaResponse{}, err
	}
	if quota == nil {
		return holiday.QuotaResponse{}, holiday.ErrQuotaNotConfigured
	}

	return toQuotaResponse(*quota), nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, status string) ([]holiday.HolidayResponse, error) {
	var statusFilter *string
	if status != "" {
		statusFilter = &status
	}

	requests, err := s.HolidayRepository.List(ctx, nil, statusFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(requests))
	for _, h := range requests {
		responses = append(responses, toResponse(h))
	}

	return responses, nil
}

// Decide implements holiday.HolidayService.
func (s *HolidayServiceImpl) Decide(ctx context.Context, req holiday.DecideHolidayRequest) (holiday.HolidayResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	request, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if request.Status != holiday.StatusPending {
		return holiday.HolidayResponse{}, holiday.ErrAlreadyDecided
	}

	now := time.Now()
	request.DecidedBy = &userID
	request.DecidedAt = &now

	if !req.Approve {
		request.Status = holiday.StatusRejected
		if err := s.HolidayRepository.Update(ctx, request); err != nil {
			return holiday.HolidayResponse{}, err
		}
		return toResponse(request), nil
	}

	request.Status = holiday.StatusApproved
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.HolidayRepository.Update(txCtx, request); err != nil {
			return err
		}
		return s.HolidayRepository.AddUsed(txCtx, request.EmployeeID, request.Date.Year(), decimal.NewFromInt(1))
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return toResponse(request), nil
}

// SetQuota implements holiday.HolidayService.
func (s *HolidayServiceImpl) SetQuota(ctx context.Context, req holiday.SetQuotaRequest) (holiday.QuotaResponse, error) {
	quota, err := s.HolidayRepository.SetQuota(ctx, req.EmployeeID, req.Year, req.Allocated)
	if err != nil {
		return holiday.QuotaResponse{}, err
	}
	return toQuotaResponse(quota), nil
}

// BulkSetQuota implements holiday.HolidayService.
func (s *HolidayServiceImpl) BulkSetQuota(ctx context.Context, req holiday.BulkSetQuotaRequest) (int, error) {
	employees, err := s.employeeRepository.GetActive(ctx)
	if err != nil {
		return 0, err
	}

	processed := 0
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, emp := range employees {
			if _, err := s.HolidayRepository.SetQuota(txCtx, emp.ID, req.Year, req.Allocated); err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return processed, nil
}

// Quotas implements holiday.HolidayService.
func (s *HolidayServiceImpl) Quotas(ctx context.Context, year int) ([]holiday.QuotaResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	quotas, err := s.HolidayRepository.ListQuotas(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.QuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		responses = append(responses, toQuotaResponse(q))
	}

	return responses, nil
}

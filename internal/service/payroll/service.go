package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/pkg/salary"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	attendanceRepository attendance.AttendanceRepository
	leaveRepository      leave.LeaveRepository
	holidayRepository    holiday.HolidayRepository
}

func NewPayrollService(
	payrollRepository payroll.PayrollRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRepository,
	holidayRepository holiday.HolidayRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:    payrollRepository,
		attendanceRepository: attendanceRepository,
		leaveRepository:      leaveRepository,
		holidayRepository:    holidayRepository,
	}
}

func componentInputs(inputs []payroll.ComponentInput) []payroll.StructureComponent {
	components := make([]payroll.StructureComponent, 0, len(inputs))
	for i, in := range inputs {
		components = append(components, payroll.StructureComponent{
			Name:         in.Name,
			Type:         salary.ComponentType(in.Type),
			Calculation:  salary.CalculationType(in.Calculation),
			Value:        in.Value,
			DisplayOrder: i + 1,
		})
	}
	return components
}

func toStructureResponse(s payroll.SalaryStructure) payroll.StructureResponse {
	resp := payroll.StructureResponse{
		ID:                  s.ID,
		EmployeeID:          s.EmployeeID,
		EmployeeName:        s.EmployeeName,
		EmployeeCode:        s.EmployeeCode,
		BasicSalary:         s.BasicSalary,
		WorkingDaysPerMonth: s.WorkingDaysPerMonth,
		Components:          make([]payroll.ComponentResponse, 0, len(s.Components)),
	}
	for _, c := range s.Components {
		resp.Components = append(resp.Components, payroll.ComponentResponse{
			Name:         c.Name,
			Type:         string(c.Type),
			Calculation:  string(c.Calculation),
			Value:        c.Value,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return resp
}

func toRecordResponse(rec payroll.PayrollRecord) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:                 rec.ID,
		EmployeeID:         rec.EmployeeID,
		EmployeeName:       rec.EmployeeName,
		EmployeeCode:       rec.EmployeeCode,
		Month:              rec.Month,
		BasicSalary:        rec.BasicSalary,
		GrossSalary:        rec.GrossSalary,
		TotalDeductions:    rec.TotalDeductions,
		LOPDays:            rec.LOPDays,
		LOPAmount:          rec.LOPAmount,
		HalfDayCount:       rec.HalfDayCount,
		HalfDayAmount:      rec.HalfDayAmount,
		Bonus:              rec.Bonus,
		NetSalary:          rec.NetSalary,
		OverrideNetSalary:  rec.OverrideNetSalary,
		OverrideReason:     rec.OverrideReason,
		EffectiveNetSalary: rec.EffectiveNet(),
		Status:             string(rec.Status),
		GeneratedAt:        rec.GeneratedAt.Format(time.RFC3339),
	}
	if rec.PaidAt != nil {
		s := rec.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	if len(rec.ComponentBreakdown) > 0 {
		// Breakdown rows are stored as JSON at generation time
		_ = json.Unmarshal(rec.ComponentBreakdown, &resp.ComponentBreakdown)
	}
	return resp
}

// UpsertStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpsertStructure(ctx context.Context, req payroll.UpsertStructureRequest) (payroll.StructureResponse, error) {
	structure := payroll.SalaryStructure{
		EmployeeID:          req.EmployeeID,
		BasicSalary:         req.BasicSalary,
		WorkingDaysPerMonth: req.WorkingDaysPerMonth,
		Components:          componentInputs(req.Components),
	}

	saved, err := s.PayrollRepository.UpsertStructure(ctx, structure)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	return toStructureResponse(saved), nil
}

// GetStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetStructure(ctx context.Context, employeeID string) (payroll.StructureResponse, error) {
	structure, err := s.PayrollRepository.GetStructureByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.StructureResponse{}, err
	}
	return toStructureResponse(structure), nil
}

// ListStructures implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListStructures(ctx context.Context) ([]payroll.StructureResponse, error) {
	structures, err := s.PayrollRepository.ListStructures(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.StructureResponse, 0, len(structures))
	for _, structure := range structures {
		responses = append(responses, toStructureResponse(structure))
	}

	return responses, nil
}

// DeleteStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteStructure(ctx context.Context, employeeID string) error {
	return s.PayrollRepository.DeleteStructure(ctx, employeeID)
}

// CreateTemplate implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateTemplate(ctx context.Context, req payroll.CreateTemplateRequest) (payroll.TemplateResponse, error) {
	template := payroll.StructureTemplate{
		Name:        req.Name,
		Description: req.Description,
	}
	for i, in := range req.Components {
		template.Components = append(template.Components, payroll.TemplateComponent{
			Name:         in.Name,
			Type:         salary.ComponentType(in.Type),
			Calculation:  salary.CalculationType(in.Calculation),
			Value:        in.Value,
			DisplayOrder: i + 1,
		})
	}

	created, err := s.PayrollRepository.CreateTemplate(ctx, template)
	if err != nil {
		return payroll.TemplateResponse{}, err
	}

	return toTemplateResponse(created), nil
}

func toTemplateResponse(t payroll.StructureTemplate) payroll.TemplateResponse {
	resp := payroll.TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
	for _, c := range t.Components {
		resp.Components = append(resp.Components, payroll.ComponentResponse{
			Name:         c.Name,
			Type:         string(c.Type),
			Calculation:  string(c.Calculation),
			Value:        c.Value,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return resp
}

// ListTemplates implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListTemplates(ctx context.Context) ([]payroll.TemplateResponse, error) {
	templates, err := s.PayrollRepository.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, toTemplateResponse(t))
	}

	return responses, nil
}

// DeleteTemplate implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.PayrollRepository.DeleteTemplate(ctx, id)
}

// ApplyTemplate implements payroll.PayrollService.
func (s *PayrollServiceImpl) ApplyTemplate(ctx context.Context, req payroll.ApplyTemplateRequest) (int, error) {
	template, err := s.PayrollRepository.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return 0, err
	}

	components := make([]payroll.StructureComponent, 0, len(template.Components))
	for _, c := range template.Components {
		components = append(components, payroll.StructureComponent{
			Name:         c.Name,
			Type:         c.Type,
			Calculation:  c.Calculation,
			Value:        c.Value,
			DisplayOrder: c.DisplayOrder,
		})
	}

	applied := 0
	for _, employeeID := range req.EmployeeIDs {
		err := s.PayrollRepository.ReplaceStructureComponents(ctx, employeeID, components)
		if err != nil {
			if errors.Is(err, payroll.ErrStructureNotFound) {
				continue // employee has no structure to apply onto
			}
			return applied, err
		}
		applied++
	}

	return applied, nil
}

// lopForMonth derives loss-of-pay and half-day counts from the attendance
// record, excluding approved paid leave and approved personal holidays.
func (s *PayrollServiceImpl) lopForMonth(ctx context.Context, employeeID string, year int, month time.Month) (lopDays, halfDays decimal.Decimal, err error) {
	records, err := s.attendanceRepository.ListByEmployeeAndMonth(ctx, employeeID, year, month)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	var absentDays, onLeaveDays int64
	var halfDayCount int64
	for _, att := range records {
		switch att.Status {
		case attendance.StatusAbsent:
			absentDays++
		case attendance.StatusOnLeave:
			onLeaveDays++
		case attendance.StatusHalfDay:
			halfDayCount++
		}
	}

	paidLeaveDays, err := s.leaveRepository.ApprovedPaidLeaveDaysInMonth(ctx, employeeID, year, month)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	personalHolidays, err := s.holidayRepository.CountApprovedInMonth(ctx, employeeID, year, month)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	// Unpaid portion of leave days counts against pay; paid leave and
	// personal holidays do not.
	unpaidLeave := decimal.NewFromInt(onLeaveDays).
		Sub(paidLeaveDays).
		Sub(decimal.NewFromInt(int64(personalHolidays)))
	if unpaidLeave.IsNegative() {
		unpaidLeave = decimal.Zero
	}

	return decimal.NewFromInt(absentDays).Add(unpaidLeave), decimal.NewFromInt(halfDayCount), nil
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerateResultResponse, error) {
	parsed, err := time.Parse("2006-01", req.Month)
	if err != nil {
		return payroll.GenerateResultResponse{}, fmt.Errorf("invalid month %q: %w", req.Month, err)
	}

	structures, err := s.PayrollRepository.ListStructures(ctx)
	if err != nil {
		return payroll.GenerateResultResponse{}, err
	}
	if len(structures) == 0 {
		return payroll.GenerateResultResponse{}, payroll.ErrNoStructuresConfigured
	}

	// Restrict to the requested employees when given
	if len(req.EmployeeIDs) > 0 {
		wanted := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			wanted[id] = true
		}
		filtered := structures[:0]
		for _, structure := range structures {
			if wanted[structure.EmployeeID] {
				filtered = append(filtered, structure)
			}
		}
		structures = filtered
	}

	result := payroll.GenerateResultResponse{Month: req.Month}
	for _, structure := range structures {
		existing, err := s.PayrollRepository.GetRecordByEmployeeAndMonth(ctx, structure.EmployeeID, req.Month)
		if err != nil {
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		lopDays, halfDays, err := s.lopForMonth(ctx, structure.EmployeeID, parsed.Year(), parsed.Month())
		if err != nil {
			return result, err
		}

		bonus := decimal.Zero
		if b, ok := req.Bonuses[structure.EmployeeID]; ok {
			bonus = b
		}

		input := salary.Input{
			Basic:               structure.BasicSalary,
			WorkingDaysPerMonth: structure.WorkingDaysPerMonth,
			LOPDays:             lopDays,
			HalfDays:            halfDays,
			Bonus:               bonus,
		}
		for _, c := range structure.Components {
			input.Components = append(input.Components, salary.Component{
				Name:        c.Name,
				Type:        c.Type,
				Calculation: c.Calculation,
				Value:       c.Value,
			})
		}

		breakdown, err := salary.Calculate(input)
		if err != nil {
			return result, fmt.Errorf("failed to compute salary for employee %s: %w", structure.EmployeeID, err)
		}

		breakdownJSON, err := json.Marshal(breakdown.Components)
		if err != nil {
			return result, fmt.Errorf("failed to marshal component breakdown: %w", err)
		}

		created, err := s.PayrollRepository.CreateRecord(ctx, payroll.PayrollRecord{
			EmployeeID:         structure.EmployeeID,
			Month:              req.Month,
			BasicSalary:        breakdown.Basic,
			GrossSalary:        breakdown.GrossSalary,
			TotalDeductions:    breakdown.TotalDeductions,
			LOPDays:            lopDays,
			LOPAmount:          breakdown.LOPDeduction,
			HalfDayCount:       halfDays,
			HalfDayAmount:      breakdown.HalfDayDeduction,
			Bonus:              bonus,
			NetSalary:          breakdown.NetSalary,
			ComponentBreakdown: breakdownJSON,
			Status:             payroll.StatusGenerated,
			GeneratedAt:        time.Now(),
		})
		if err != nil {
			return result, err
		}

		created.EmployeeName = structure.EmployeeName
		created.EmployeeCode = structure.EmployeeCode
		result.Generated++
		result.Records = append(result.Records, toRecordResponse(created))
	}

	return result, nil
}

// ListRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) (payroll.ListRecordsResponse, error) {
	records, total, err := s.PayrollRepository.ListRecords(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return payroll.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// GetRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.PayrollRepository.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toRecordResponse(rec), nil
}

// Override implements payroll.PayrollService.
func (s *PayrollServiceImpl) Override(ctx context.Context, req payroll.OverrideRequest) (payroll.RecordResponse, error) {
	rec, err := s.PayrollRepository.GetRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status == payroll.StatusPaid {
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyPaid
	}
	if req.Reason == "" {
		return payroll.RecordResponse{}, payroll.ErrOverrideReasonRequired
	}

	if err := s.PayrollRepository.SetOverride(ctx, req.ID, req); err != nil {
		return payroll.RecordResponse{}, err
	}

	rec.OverrideNetSalary = &req.NetSalary
	rec.OverrideReason = &req.Reason
	return toRecordResponse(rec), nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (int, error) {
	return s.PayrollRepository.MarkPaid(ctx, req.RecordIDs)
}

// BankTransferCSV implements payroll.PayrollService.
func (s *PayrollServiceImpl) BankTransferCSV(ctx context.Context, month string) ([]byte, error) {
	records, err := s.PayrollRepository.ListRecordsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"employee_code", "employee_name", "month", "net_salary", "status"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		code, name := "", ""
		if rec.EmployeeCode != nil {
			code = *rec.EmployeeCode
		}
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		row := []string{code, name, rec.Month, rec.EffectiveNet().StringFixed(2), string(rec.Status)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
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

// MySlips implements payroll.PayrollService.
func (s *PayrollServiceImpl) MySlips(ctx context.Context) ([]payroll.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.PayrollRepository.ListRecordsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return responses, nil
}

// MySlip implements payroll.PayrollService.
func (s *PayrollServiceImpl) MySlip(ctx context.Context, id string) (payroll.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	rec, err := s.PayrollRepository.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.EmployeeID != employeeID {
		return payroll.RecordResponse{}, payroll.ErrRecordNotFound
	}

	return toRecordResponse(rec), nil
}

package payroll

import (
	"github.com/emsuite/ems-backend-go/internal/pkg/salary"
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== STRUCTURE DTOs ==========

type ComponentInput struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`        // EARNING, DEDUCTION
	Calculation string          `json:"calculation"` // FIXED, PERCENTAGE_OF_BASIC, PERCENTAGE_OF_GROSS
	Value       decimal.Decimal `json:"value"`
}

func (c *ComponentInput) validate(prefix string, errs validator.ValidationErrors) validator.ValidationErrors {
	if validator.IsEmpty(c.Name) {
		errs = append(errs, validator.ValidationError{Field: prefix + ".name", Message: "is required"})
	}
	if c.Type != string(salary.ComponentTypeEarning) && c.Type != string(salary.ComponentTypeDeduction) {
		errs = append(errs, validator.ValidationError{Field: prefix + ".type", Message: "must be EARNING or DEDUCTION"})
	}
	switch salary.CalculationType(c.Calculation) {
	case salary.CalculationFixed, salary.CalculationPercentageOfBasic, salary.CalculationPercentageOfGross:
	default:
		errs = append(errs, validator.ValidationError{Field: prefix + ".calculation", Message: "must be FIXED, PERCENTAGE_OF_BASIC or PERCENTAGE_OF_GROSS"})
	}
	if c.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: prefix + ".value", Message: "must be non-negative"})
	}
	return errs
}

type UpsertStructureRequest struct {
	EmployeeID          string           `json:"employee_id"`
	BasicSalary         decimal.Decimal  `json:"basic_salary"`
	WorkingDaysPerMonth int              `json:"working_days_per_month"`
	Components          []ComponentInput `json:"components"`
}

func (r *UpsertStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.BasicSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be greater than zero"})
	}
	if r.WorkingDaysPerMonth == 0 {
		r.WorkingDaysPerMonth = salary.DefaultWorkingDaysPerMonth
	}
	if r.WorkingDaysPerMonth < 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_month", Message: "must be greater than zero"})
	}
	for i := range r.Components {
		errs = r.Components[i].validate(validator.Itoa(i), errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Calculation  string          `json:"calculation"`
	Value        decimal.Decimal `json:"value"`
	DisplayOrder int             `json:"display_order"`
}

type StructureResponse struct {
	ID                  string              `json:"id"`
	EmployeeID          string              `json:"employee_id"`
	EmployeeName        *string             `json:"employee_name,omitempty"`
	EmployeeCode        *string             `json:"employee_code,omitempty"`
	BasicSalary         decimal.Decimal     `json:"basic_salary"`
	WorkingDaysPerMonth int                 `json:"working_days_per_month"`
	Components          []ComponentResponse `json:"components"`
}

// ========== TEMPLATE DTOs ==========

type CreateTemplateRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Components  []ComponentInput `json:"components"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if len(r.Components) == 0 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "at least one component is required"})
	}
	for i := range r.Components {
		errs = r.Components[i].validate(validator.Itoa(i), errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApplyTemplateRequest struct {
	TemplateID  string   `json:"-"`
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *ApplyTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TemplateResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Components  []ComponentResponse `json:"components"`
}

// ========== RECORD DTOs ==========

type GeneratePayrollRequest struct {
	Month       string                     `json:"month"` // YYYY-MM
	EmployeeIDs []string                   `json:"employee_ids,omitempty"`
	Bonuses     map[string]decimal.Decimal `json:"bonuses,omitempty"` // employee_id -> bonus
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	for id, bonus := range r.Bonuses {
		if bonus.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "bonuses." + id, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideRequest struct {
	ID        string          `json:"-"`
	NetSalary decimal.Decimal `json:"net_salary"`
	Reason    string          `json:"reason"`
}

func (r *OverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.NetSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_salary", Message: "must be non-negative"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                 string                   `json:"id"`
	EmployeeID         string                   `json:"employee_id"`
	EmployeeName       *string                  `json:"employee_name,omitempty"`
	EmployeeCode       *string                  `json:"employee_code,omitempty"`
	Month              string                   `json:"month"`
	BasicSalary        decimal.Decimal          `json:"basic_salary"`
	GrossSalary        decimal.Decimal          `json:"gross_salary"`
	TotalDeductions    decimal.Decimal          `json:"total_deductions"`
	LOPDays            decimal.Decimal          `json:"lop_days"`
	LOPAmount          decimal.Decimal          `json:"lop_amount"`
	HalfDayCount       decimal.Decimal          `json:"half_day_count"`
	HalfDayAmount      decimal.Decimal          `json:"half_day_amount"`
	Bonus              decimal.Decimal          `json:"bonus"`
	NetSalary          decimal.Decimal          `json:"net_salary"`
	OverrideNetSalary  *decimal.Decimal         `json:"override_net_salary,omitempty"`
	OverrideReason     *string                  `json:"override_reason,omitempty"`
	EffectiveNetSalary decimal.Decimal          `json:"effective_net_salary"`
	ComponentBreakdown []salary.ComponentAmount `json:"component_breakdown,omitempty"`
	Status             string                   `json:"status"`
	GeneratedAt        string                   `json:"generated_at"`
	PaidAt             *string                  `json:"paid_at,omitempty"`
}

type RecordFilter struct {
	Month      *string `json:"month,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && *f.Month != "" {
		if _, valid := validator.IsValidMonth(*f.Month); !valid {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
		}
	}
	if f.Status != nil {
		validStatuses := []string{string(StatusDraft), string(StatusGenerated), string(StatusPaid)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: DRAFT, GENERATED, PAID"})
		}
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

type GenerateResultResponse struct {
	Month     string           `json:"month"`
	Generated int              `json:"generated"`
	Skipped   int              `json:"skipped"` // already generated or no structure
	Records   []RecordResponse `json:"records"`
}

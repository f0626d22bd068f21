package leave

import (
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== LEAVE TYPE DTOs ==========

type CreateLeaveTypeRequest struct {
	Name            string          `json:"name"`
	AnnualQuota     decimal.Decimal `json:"annual_quota"`
	Paid            bool            `json:"paid"`
	CarryForward    bool            `json:"carry_forward"`
	MaxCarryForward decimal.Decimal `json:"max_carry_forward"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "annual_quota", Message: "must be non-negative"})
	}
	if r.MaxCarryForward.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_carry_forward", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID              string           `json:"-"`
	Name            *string          `json:"name,omitempty"`
	AnnualQuota     *decimal.Decimal `json:"annual_quota,omitempty"`
	Paid            *bool            `json:"paid,omitempty"`
	CarryForward    *bool            `json:"carry_forward,omitempty"`
	MaxCarryForward *decimal.Decimal `json:"max_carry_forward,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.AnnualQuota != nil && r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "annual_quota", Message: "must be non-negative"})
	}
	if r.MaxCarryForward != nil && r.MaxCarryForward.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_carry_forward", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	AnnualQuota     decimal.Decimal `json:"annual_quota"`
	Paid            bool            `json:"paid"`
	CarryForward    bool            `json:"carry_forward"`
	MaxCarryForward decimal.Decimal `json:"max_carry_forward"`
}

// ========== REQUEST DTOs ==========

type ApplyLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	Reason      string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "is required"})
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required"})
	} else if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideLeaveRequest struct {
	ID           string  `json:"-"`
	Approve      bool    `json:"approve"`
	RejectReason *string `json:"reject_reason,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && (r.RejectReason == nil || validator.IsEmpty(*r.RejectReason)) {
		errs = append(errs, validator.ValidationError{Field: "reject_reason", Message: "is required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	EmployeeCode  *string         `json:"employee_code,omitempty"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName *string         `json:"leave_type_name,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Days          decimal.Decimal `json:"days"`
	Reason        string          `json:"reason"`
	Status        string          `json:"status"`
	DecidedBy     *string         `json:"decided_by,omitempty"`
	DecidedAt     *string         `json:"decided_at,omitempty"`
	RejectReason  *string         `json:"reject_reason,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		validStatuses := []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: PENDING, APPROVED, REJECTED, CANCELLED"})
		}
	}
	for field, value := range map[string]*string{"start_date": f.StartDate, "end_date": f.EndDate} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be in YYYY-MM-DD format"})
			}
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

type ListLeaveRequestsResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type BalanceResponse struct {
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName *string         `json:"leave_type_name,omitempty"`
	Year          int             `json:"year"`
	Allocated     decimal.Decimal `json:"allocated"`
	Used          decimal.Decimal `json:"used"`
	CarriedOver   decimal.Decimal `json:"carried_over"`
	Available     decimal.Decimal `json:"available"`
}

type CarryForwardResultResponse struct {
	FromYear  int `json:"from_year"`
	ToYear    int `json:"to_year"`
	Processed int `json:"processed"`
}

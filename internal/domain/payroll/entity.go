package payroll

import (
	"time"

	"github.com/emsuite/ems-backend-go/internal/pkg/salary"
	"github.com/shopspring/decimal"
)

// SalaryStructure - per-employee salary definition
type SalaryStructure struct {
	ID                  string
	EmployeeID          string
	BasicSalary         decimal.Decimal
	WorkingDaysPerMonth int
	Components          []StructureComponent
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// StructureComponent - one earning or deduction line of a structure.
// DisplayOrder is presentation only; totals are order-independent.
type StructureComponent struct {
	ID           string
	StructureID  string
	Name         string
	Type         salary.ComponentType
	Calculation  salary.CalculationType
	Value        decimal.Decimal
	DisplayOrder int
}

// StructureTemplate - reusable component set applied to many employees
type StructureTemplate struct {
	ID          string
	Name        string
	Description *string
	Components  []TemplateComponent
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TemplateComponent struct {
	ID           string
	TemplateID   string
	Name         string
	Type         salary.ComponentType
	Calculation  salary.CalculationType
	Value        decimal.Decimal
	DisplayOrder int
}

// PayrollStatus enum
type PayrollStatus string

const (
	StatusDraft     PayrollStatus = "DRAFT"
	StatusGenerated PayrollStatus = "GENERATED"
	StatusPaid      PayrollStatus = "PAID"
)

// PayrollRecord - computed payroll snapshot for one employee and month.
// Figures are frozen at generation time and never recomputed; an override
// stores its own net figure alongside the originals.
type PayrollRecord struct {
	ID                 string
	EmployeeID         string
	Month              string // YYYY-MM
	BasicSalary        decimal.Decimal
	GrossSalary        decimal.Decimal
	TotalDeductions    decimal.Decimal
	LOPDays            decimal.Decimal
	LOPAmount          decimal.Decimal
	HalfDayCount       decimal.Decimal
	HalfDayAmount      decimal.Decimal
	Bonus              decimal.Decimal
	NetSalary          decimal.Decimal
	OverrideNetSalary  *decimal.Decimal
	OverrideReason     *string
	ComponentBreakdown []byte // JSON array of component amounts
	Status             PayrollStatus
	GeneratedAt        time.Time
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// EffectiveNet returns the payable net, preferring an admin override.
func (r *PayrollRecord) EffectiveNet() decimal.Decimal {
	if r.OverrideNetSalary != nil {
		return *r.OverrideNetSalary
	}
	return r.NetSalary
}

package salary

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ComponentType classifies a salary component as money in or money out.
// Negative amounts are never used; direction is always expressed via type.
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "EARNING"
	ComponentTypeDeduction ComponentType = "DEDUCTION"
)

// CalculationType determines how a component's value is resolved to an amount.
type CalculationType string

const (
	CalculationFixed             CalculationType = "FIXED"
	CalculationPercentageOfBasic CalculationType = "PERCENTAGE_OF_BASIC"
	CalculationPercentageOfGross CalculationType = "PERCENTAGE_OF_GROSS"
)

// DefaultWorkingDaysPerMonth is used when a structure does not configure its
// own working-days divisor.
const DefaultWorkingDaysPerMonth = 26

// ErrInvalidWorkingDays is returned when the working-days divisor is not a
// positive number. Callers that allow the field to be omitted should apply
// DefaultWorkingDaysPerMonth before calling Calculate.
var ErrInvalidWorkingDays = errors.New("working days per month must be greater than zero")

// Component is one named line of a salary structure.
type Component struct {
	Name        string          `json:"name"`
	Type        ComponentType   `json:"type"`
	Calculation CalculationType `json:"calculation_type"`
	Value       decimal.Decimal `json:"value"`
}

// Input is everything needed to compute one month of pay.
type Input struct {
	Basic               decimal.Decimal
	Components          []Component
	WorkingDaysPerMonth int
	LOPDays             decimal.Decimal
	HalfDays            decimal.Decimal
	Bonus               decimal.Decimal
}

// ComponentAmount is a component with its resolved monetary amount.
type ComponentAmount struct {
	Component
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is the full result of a salary computation. The same shape backs
// the structure editor preview, generated payslips and the LOP report.
type Breakdown struct {
	Basic            decimal.Decimal   `json:"basic"`
	GrossSalary      decimal.Decimal   `json:"gross_salary"`
	TotalDeductions  decimal.Decimal   `json:"total_deductions"`
	LOPDeduction     decimal.Decimal   `json:"lop_deduction"`
	HalfDayDeduction decimal.Decimal   `json:"half_day_deduction"`
	Bonus            decimal.Decimal   `json:"bonus"`
	NetSalary        decimal.Decimal   `json:"net_salary"`
	Components       []ComponentAmount `json:"component_breakdown"`
}

var (
	oneHundred = decimal.NewFromInt(100)
	half       = decimal.NewFromFloat(0.5)
)

// Calculate resolves a salary structure into a monthly breakdown.
//
// Resolution order matters only for gross-relative components: fixed amounts
// and percentages of basic are resolved first, gross is then fixed as
// basic plus the earnings resolved so far, and PERCENTAGE_OF_GROSS
// components are evaluated once against that provisional gross. Gross
// percentages therefore never compound on each other.
func Calculate(in Input) (Breakdown, error) {
	if in.WorkingDaysPerMonth <= 0 {
		return Breakdown{}, ErrInvalidWorkingDays
	}

	amounts := make([]ComponentAmount, len(in.Components))

	// Pass 1: everything that does not depend on gross.
	provisionalGross := in.Basic
	for i, comp := range in.Components {
		var amount decimal.Decimal
		switch comp.Calculation {
		case CalculationFixed:
			amount = comp.Value
		case CalculationPercentageOfBasic:
			amount = in.Basic.Mul(comp.Value).Div(oneHundred)
		default:
			continue // resolved in pass 2
		}
		amounts[i] = ComponentAmount{Component: comp, Amount: amount}
		if comp.Type == ComponentTypeEarning {
			provisionalGross = provisionalGross.Add(amount)
		}
	}

	// Pass 2: gross-relative components against the provisional gross.
	grossSalary := provisionalGross
	totalDeductions := decimal.Zero
	for i, comp := range in.Components {
		if comp.Calculation == CalculationPercentageOfGross {
			amount := provisionalGross.Mul(comp.Value).Div(oneHundred)
			amounts[i] = ComponentAmount{Component: comp, Amount: amount}
			if comp.Type == ComponentTypeEarning {
				grossSalary = grossSalary.Add(amount)
			}
		}
		if comp.Type == ComponentTypeDeduction {
			totalDeductions = totalDeductions.Add(amounts[i].Amount)
		}
	}

	workingDays := decimal.NewFromInt(int64(in.WorkingDaysPerMonth))
	dailyRate := grossSalary.Div(workingDays)
	lopDeduction := dailyRate.Mul(in.LOPDays)
	halfDayDeduction := dailyRate.Mul(half).Mul(in.HalfDays)
	totalDeductions = totalDeductions.Add(lopDeduction).Add(halfDayDeduction)

	netSalary := grossSalary.Add(in.Bonus).Sub(totalDeductions)
	if netSalary.IsNegative() {
		netSalary = decimal.Zero
	}

	return Breakdown{
		Basic:            in.Basic,
		GrossSalary:      grossSalary,
		TotalDeductions:  totalDeductions,
		LOPDeduction:     lopDeduction,
		HalfDayDeduction: halfDayDeduction,
		Bonus:            in.Bonus,
		NetSalary:        netSalary,
		Components:       amounts,
	}, nil
}

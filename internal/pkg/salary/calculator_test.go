package salary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestCalculate_FixedComponentsWithLOP(t *testing.T) {
	in := Input{
		Basic: dec(30000),
		Components: []Component{
			{Name: "HRA", Type: ComponentTypeEarning, Calculation: CalculationFixed, Value: dec(5000)},
			{Name: "PF", Type: ComponentTypeDeduction, Calculation: CalculationFixed, Value: dec(1800)},
		},
		WorkingDaysPerMonth: 26,
		LOPDays:             dec(2),
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, got.GrossSalary.Equal(dec(35000)), "gross = %s", got.GrossSalary)

	// dailyRate = 35000/26 ~= 1346.15, lop = 2 days ~= 2692.31
	assert.InDelta(t, 2692.31, got.LOPDeduction.InexactFloat64(), 0.01)
	assert.InDelta(t, 4492.31, got.TotalDeductions.InexactFloat64(), 0.01)
	assert.InDelta(t, 30507.69, got.NetSalary.InexactFloat64(), 0.01)
	assert.True(t, got.HalfDayDeduction.IsZero())
}

func TestCalculate_PercentageOfBasic(t *testing.T) {
	in := Input{
		Basic: dec(20000),
		Components: []Component{
			{Name: "DA", Type: ComponentTypeEarning, Calculation: CalculationPercentageOfBasic, Value: dec(10)},
			{Name: "Transport", Type: ComponentTypeEarning, Calculation: CalculationFixed, Value: dec(1600)},
		},
		WorkingDaysPerMonth: 26,
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	// 10% of basic is 2000 regardless of any other component.
	assert.True(t, got.Components[0].Amount.Equal(dec(2000)), "DA amount = %s", got.Components[0].Amount)
	assert.True(t, got.GrossSalary.Equal(dec(23600)))
}

func TestCalculate_PercentageOfGross_SinglePass(t *testing.T) {
	// Two gross-relative components must both resolve against the
	// provisional gross (basic + fixed + basic-percentage earnings),
	// not against each other.
	in := Input{
		Basic: dec(10000),
		Components: []Component{
			{Name: "Special", Type: ComponentTypeEarning, Calculation: CalculationFixed, Value: dec(2000)},
			{Name: "Incentive A", Type: ComponentTypeEarning, Calculation: CalculationPercentageOfGross, Value: dec(10)},
			{Name: "Incentive B", Type: ComponentTypeEarning, Calculation: CalculationPercentageOfGross, Value: dec(10)},
		},
		WorkingDaysPerMonth: 26,
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	// provisional gross = 12000; each incentive = 1200; final gross = 14400.
	assert.True(t, got.Components[1].Amount.Equal(dec(1200)))
	assert.True(t, got.Components[2].Amount.Equal(dec(1200)))
	assert.True(t, got.GrossSalary.Equal(dec(14400)), "gross = %s", got.GrossSalary)
}

func TestCalculate_GrossPercentageDeduction(t *testing.T) {
	in := Input{
		Basic: dec(50000),
		Components: []Component{
			{Name: "Professional Tax", Type: ComponentTypeDeduction, Calculation: CalculationPercentageOfGross, Value: dec(2)},
		},
		WorkingDaysPerMonth: 26,
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	// Deductions never feed back into gross.
	assert.True(t, got.GrossSalary.Equal(dec(50000)))
	assert.True(t, got.TotalDeductions.Equal(dec(1000)))
	assert.True(t, got.NetSalary.Equal(dec(49000)))
}

func TestCalculate_HalfDaysAndBonus(t *testing.T) {
	in := Input{
		Basic:               dec(26000),
		WorkingDaysPerMonth: 26,
		HalfDays:            dec(3),
		Bonus:               dec(5000),
	}

	got, err := Calculate(in)
	require.NoError(t, err)

	// dailyRate = 1000; half-day deduction = 1500.
	assert.True(t, got.HalfDayDeduction.Equal(dec(1500)), "half day = %s", got.HalfDayDeduction)
	assert.True(t, got.NetSalary.Equal(dec(29500)))
}

func TestCalculate_NetSalaryFlooredAtZero(t *testing.T) {
	in := Input{
		Basic: dec(1000),
		Components: []Component{
			{Name: "Recovery", Type: ComponentTypeDeduction, Calculation: CalculationFixed, Value: dec(5000)},
		},
		WorkingDaysPerMonth: 26,
		LOPDays:             dec(10),
	}

	got, err := Calculate(in)
	require.NoError(t, err)
	assert.True(t, got.NetSalary.IsZero(), "net = %s, want 0", got.NetSalary)
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Input{
		Basic: dec(42000),
		Components: []Component{
			{Name: "HRA", Type: ComponentTypeEarning, Calculation: CalculationPercentageOfBasic, Value: dec(40)},
			{Name: "PF", Type: ComponentTypeDeduction, Calculation: CalculationPercentageOfBasic, Value: dec(12)},
		},
		WorkingDaysPerMonth: 22,
		LOPDays:             dec(1.5),
		Bonus:               dec(750),
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
}

func TestCalculate_ComponentOrderDoesNotAffectTotals(t *testing.T) {
	comps := []Component{
		{Name: "HRA", Type: ComponentTypeEarning, Calculation: CalculationFixed, Value: dec(8000)},
		{Name: "DA", Type: ComponentTypeEarning, Calculation: CalculationPercentageOfBasic, Value: dec(5)},
		{Name: "PF", Type: ComponentTypeDeduction, Calculation: CalculationFixed, Value: dec(1800)},
	}
	reversed := []Component{comps[2], comps[1], comps[0]}

	a, err := Calculate(Input{Basic: dec(30000), Components: comps, WorkingDaysPerMonth: 26})
	require.NoError(t, err)
	b, err := Calculate(Input{Basic: dec(30000), Components: reversed, WorkingDaysPerMonth: 26})
	require.NoError(t, err)

	assert.True(t, a.GrossSalary.Equal(b.GrossSalary))
	assert.True(t, a.TotalDeductions.Equal(b.TotalDeductions))
	assert.True(t, a.NetSalary.Equal(b.NetSalary))
}

func TestCalculate_InvalidWorkingDays(t *testing.T) {
	for _, days := range []int{0, -5} {
		_, err := Calculate(Input{Basic: dec(10000), WorkingDaysPerMonth: days})
		assert.ErrorIs(t, err, ErrInvalidWorkingDays, "working days = %d", days)
	}
}

package payroll

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/holiday"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/pkg/salary"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	payroll.PayrollRepository

	structures []payroll.SalaryStructure
	templates  map[string]payroll.StructureTemplate
	records    map[string]payroll.PayrollRecord
	replaced   map[string][]payroll.StructureComponent
	overrides  map[string]payroll.OverrideRequest
	nextID     int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		templates: make(map[string]payroll.StructureTemplate),
		records:   make(map[string]payroll.PayrollRecord),
		replaced:  make(map[string][]payroll.StructureComponent),
		overrides: make(map[string]payroll.OverrideRequest),
	}
}

func (f *fakePayrollRepo) ListStructures(_ context.Context) ([]payroll.SalaryStructure, error) {
	return f.structures, nil
}

func (f *fakePayrollRepo) GetTemplateByID(_ context.Context, id string) (payroll.StructureTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return payroll.StructureTemplate{}, payroll.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakePayrollRepo) ReplaceStructureComponents(_ context.Context, employeeID string, components []payroll.StructureComponent) error {
	for _, s := range f.structures {
		if s.EmployeeID == employeeID {
			f.replaced[employeeID] = components
			return nil
		}
	}
	return payroll.ErrStructureNotFound
}

func (f *fakePayrollRepo) CreateRecord(_ context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	f.nextID++
	r.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[r.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) GetRecordByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) GetRecordByEmployeeAndMonth(_ context.Context, employeeID, month string) (*payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Month == month {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) ListRecordsByMonth(_ context.Context, month string) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) SetOverride(_ context.Context, id string, req payroll.OverrideRequest) error {
	r, ok := f.records[id]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	r.OverrideNetSalary = &req.NetSalary
	r.OverrideReason = &req.Reason
	f.records[id] = r
	f.overrides[id] = req
	return nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	monthly map[string][]attendance.Attendance
}

func (s *stubAttendanceRepo) ListByEmployeeAndMonth(_ context.Context, employeeID string, _ int, _ time.Month) ([]attendance.Attendance, error) {
	return s.monthly[employeeID], nil
}

type stubLeaveRepo struct {
	leave.LeaveRepository
	paidDays map[string]decimal.Decimal
}

func (s *stubLeaveRepo) ApprovedPaidLeaveDaysInMonth(_ context.Context, employeeID string, _ int, _ time.Month) (decimal.Decimal, error) {
	return s.paidDays[employeeID], nil
}

type stubHolidayRepo struct {
	holiday.HolidayRepository
	approved map[string]int
}

func (s *stubHolidayRepo) CountApprovedInMonth(_ context.Context, employeeID string, _ int, _ time.Month) (int, error) {
	return s.approved[employeeID], nil
}

func newTestService(repo *fakePayrollRepo, att *stubAttendanceRepo, lv *stubLeaveRepo, hd *stubHolidayRepo) payroll.PayrollService {
	if att == nil {
		att = &stubAttendanceRepo{monthly: map[string][]attendance.Attendance{}}
	}
	if lv == nil {
		lv = &stubLeaveRepo{paidDays: map[string]decimal.Decimal{}}
	}
	if hd == nil {
		hd = &stubHolidayRepo{approved: map[string]int{}}
	}
	return NewPayrollService(repo, att, lv, hd)
}

func employeeContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func basicStructure(employeeID string, basic int64) payroll.SalaryStructure {
	return payroll.SalaryStructure{
		ID:                  "structure-" + employeeID,
		EmployeeID:          employeeID,
		BasicSalary:         decimal.NewFromInt(basic),
		WorkingDaysPerMonth: 26,
	}
}

func TestGenerate_NoStructures(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), nil, nil, nil)

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2026-03"})

	assert.ErrorIs(t, err, payroll.ErrNoStructuresConfigured)
}

func TestGenerate_InvalidMonth(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), nil, nil, nil)

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "March 2026"})

	assert.Error(t, err)
}

func TestGenerate_CleanMonth(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	svc := newTestService(repo, nil, nil, nil)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2026-03"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(26000)), "net %s", rec.NetSalary)
	assert.Equal(t, string(payroll.StatusGenerated), rec.Status)
}

func TestGenerate_LOPAndHalfDays(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	att := &stubAttendanceRepo{monthly: map[string][]attendance.Attendance{
		"emp-1": {
			{Status: attendance.StatusAbsent},
			{Status: attendance.StatusAbsent},
			{Status: attendance.StatusHalfDay},
		},
	}}
	svc := newTestService(repo, att, nil, nil)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2026-03"})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	// Daily rate 1000: two absences cost 2000, a half day costs 500
	assert.True(t, rec.LOPDays.Equal(decimal.NewFromInt(2)), "lop days %s", rec.LOPDays)
	assert.True(t, rec.LOPAmount.Equal(decimal.NewFromInt(2000)), "lop amount %s", rec.LOPAmount)
	assert.True(t, rec.HalfDayAmount.Equal(decimal.NewFromInt(500)), "half day amount %s", rec.HalfDayAmount)
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(23500)), "net %s", rec.NetSalary)
}

func TestGenerate_PaidLeaveExcludedFromLOP(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	att := &stubAttendanceRepo{monthly: map[string][]attendance.Attendance{
		"emp-1": {
			{Status: attendance.StatusOnLeave},
			{Status: attendance.StatusOnLeave},
			{Status: attendance.StatusOnLeave},
		},
	}}
	lv := &stubLeaveRepo{paidDays: map[string]decimal.Decimal{"emp-1": decimal.NewFromInt(2)}}
	hd := &stubHolidayRepo{approved: map[string]int{"emp-1": 1}}
	svc := newTestService(repo, att, lv, hd)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2026-03"})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	// All three leave days are covered by paid leave plus a personal holiday
	assert.True(t, result.Records[0].LOPDays.IsZero(), "lop days %s", result.Records[0].LOPDays)
	assert.True(t, result.Records[0].NetSalary.Equal(decimal.NewFromInt(26000)))
}

func TestGenerate_SkipsExistingRecords(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	svc := newTestService(repo, nil, nil, nil)
	ctx := context.Background()

	first, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2026-03"})
	require.NoError(t, err)
	require.Equal(t, 1, first.Generated)

	second, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, 1, second.Skipped)
}

func TestGenerate_FiltersRequestedEmployees(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{
		basicStructure("emp-1", 26000),
		basicStructure("emp-2", 52000),
	}
	svc := newTestService(repo, nil, nil, nil)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		Month:       "2026-03",
		EmployeeIDs: []string{"emp-2"},
	})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "emp-2", result.Records[0].EmployeeID)
}

func TestGenerate_AppliesBonus(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	svc := newTestService(repo, nil, nil, nil)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		Month:   "2026-03",
		Bonuses: map[string]decimal.Decimal{"emp-1": decimal.NewFromInt(3000)},
	})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].NetSalary.Equal(decimal.NewFromInt(29000)))
}

func TestGenerate_ComponentBreakdownStored(t *testing.T) {
	repo := newFakePayrollRepo()
	structure := basicStructure("emp-1", 20000)
	structure.Components = []payroll.StructureComponent{
		{Name: "HRA", Type: salary.ComponentTypeEarning, Calculation: salary.CalculationPercentageOfBasic, Value: decimal.NewFromInt(40)},
		{Name: "PF", Type: salary.ComponentTypeDeduction, Calculation: salary.CalculationFixed, Value: decimal.NewFromInt(1800)},
	}
	repo.structures = []payroll.SalaryStructure{structure}
	svc := newTestService(repo, nil, nil, nil)

	result, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2026-03"})

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.True(t, rec.GrossSalary.Equal(decimal.NewFromInt(28000)), "gross %s", rec.GrossSalary)
	require.Len(t, rec.ComponentBreakdown, 2)
	assert.Equal(t, "HRA", rec.ComponentBreakdown[0].Name)
	assert.True(t, rec.ComponentBreakdown[0].Amount.Equal(decimal.NewFromInt(8000)))
}

func TestOverride_RequiresReason(t *testing.T) {
	repo := newFakePayrollRepo()
	rec, err := repo.CreateRecord(context.Background(), payroll.PayrollRecord{
		EmployeeID: "emp-1",
		Month:      "2026-03",
		NetSalary:  decimal.NewFromInt(25000),
		Status:     payroll.StatusGenerated,
	})
	require.NoError(t, err)
	svc := newTestService(repo, nil, nil, nil)

	_, err = svc.Override(context.Background(), payroll.OverrideRequest{
		ID:        rec.ID,
		NetSalary: decimal.NewFromInt(24000),
	})

	assert.ErrorIs(t, err, payroll.ErrOverrideReasonRequired)
}

func TestOverride_PaidRecordIsFrozen(t *testing.T) {
	repo := newFakePayrollRepo()
	rec, err := repo.CreateRecord(context.Background(), payroll.PayrollRecord{
		EmployeeID: "emp-1",
		Month:      "2026-03",
		NetSalary:  decimal.NewFromInt(25000),
		Status:     payroll.StatusPaid,
	})
	require.NoError(t, err)
	svc := newTestService(repo, nil, nil, nil)

	_, err = svc.Override(context.Background(), payroll.OverrideRequest{
		ID:        rec.ID,
		NetSalary: decimal.NewFromInt(24000),
		Reason:    "correction",
	})

	assert.ErrorIs(t, err, payroll.ErrRecordAlreadyPaid)
}

func TestOverride_PreservesComputedFigures(t *testing.T) {
	repo := newFakePayrollRepo()
	rec, err := repo.CreateRecord(context.Background(), payroll.PayrollRecord{
		EmployeeID: "emp-1",
		Month:      "2026-03",
		NetSalary:  decimal.NewFromInt(25000),
		Status:     payroll.StatusGenerated,
	})
	require.NoError(t, err)
	svc := newTestService(repo, nil, nil, nil)

	resp, err := svc.Override(context.Background(), payroll.OverrideRequest{
		ID:        rec.ID,
		NetSalary: decimal.NewFromInt(24000),
		Reason:    "advance recovered in cash",
	})

	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(25000)), "computed net must survive")
	require.NotNil(t, resp.OverrideNetSalary)
	assert.True(t, resp.OverrideNetSalary.Equal(decimal.NewFromInt(24000)))
	assert.True(t, resp.EffectiveNetSalary.Equal(decimal.NewFromInt(24000)))
}

func TestApplyTemplate_SkipsEmployeesWithoutStructure(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.structures = []payroll.SalaryStructure{basicStructure("emp-1", 26000)}
	repo.templates["tpl-1"] = payroll.StructureTemplate{
		ID:   "tpl-1",
		Name: "Standard",
		Components: []payroll.TemplateComponent{
			{Name: "HRA", Type: salary.ComponentTypeEarning, Calculation: salary.CalculationPercentageOfBasic, Value: decimal.NewFromInt(40)},
		},
	}
	svc := newTestService(repo, nil, nil, nil)

	applied, err := svc.ApplyTemplate(context.Background(), payroll.ApplyTemplateRequest{
		TemplateID:  "tpl-1",
		EmployeeIDs: []string{"emp-1", "emp-without-structure"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Contains(t, repo.replaced, "emp-1")
}

func TestBankTransferCSV(t *testing.T) {
	repo := newFakePayrollRepo()
	code, name := "EMP001", "Jordan Lee"
	override := decimal.NewFromInt(24000)
	_, err := repo.CreateRecord(context.Background(), payroll.PayrollRecord{
		EmployeeID:        "emp-1",
		EmployeeCode:      &code,
		EmployeeName:      &name,
		Month:             "2026-03",
		NetSalary:         decimal.NewFromInt(25000),
		OverrideNetSalary: &override,
		Status:            payroll.StatusGenerated,
	})
	require.NoError(t, err)
	svc := newTestService(repo, nil, nil, nil)

	data, err := svc.BankTransferCSV(context.Background(), "2026-03")

	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"employee_code", "employee_name", "month", "net_salary", "status"}, rows[0])
	// Override wins over the computed net
	assert.Equal(t, []string{"EMP001", "Jordan Lee", "2026-03", "24000.00", "GENERATED"}, rows[1])
}

func TestMySlip_RejectsOtherEmployees(t *testing.T) {
	repo := newFakePayrollRepo()
	rec, err := repo.CreateRecord(context.Background(), payroll.PayrollRecord{
		EmployeeID: "emp-1",
		Month:      "2026-03",
		NetSalary:  decimal.NewFromInt(25000),
		Status:     payroll.StatusGenerated,
	})
	require.NoError(t, err)
	svc := newTestService(repo, nil, nil, nil)

	_, err = svc.MySlip(employeeContext(t, "emp-2"), rec.ID)

	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

package payroll

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	financeService "github.com/mosala-hr/payroll-backend-go/internal/service/finance"
	taxService "github.com/mosala-hr/payroll-backend-go/internal/service/tax"
	"github.com/mosala-hr/payroll-backend-go/internal/testutil"
	"github.com/shopspring/decimal"
)

type engineFixture struct {
	employees    *testutil.MockEmployeeRepository
	months       *testutil.MockMonthRepository
	settings     *testutil.MockSettingsRepository
	components   *testutil.MockComponentRepository
	computations *testutil.MockComputationRepository
	deductions   *testutil.MockDeductionRepository
	brackets     *testutil.MockBracketRepository
	advances     *testutil.MockAdvanceRepository
	credits      *testutil.MockCreditRepository
	engine       *Engine
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		employees:    testutil.NewMockEmployeeRepository(),
		months:       testutil.NewMockMonthRepository(),
		settings:     testutil.NewMockSettingsRepository(),
		components:   testutil.NewMockComponentRepository(),
		computations: testutil.NewMockComputationRepository(),
		deductions:   testutil.NewMockDeductionRepository(),
		brackets:     testutil.NewMockBracketRepository(),
		advances:     testutil.NewMockAdvanceRepository(),
		credits:      testutil.NewMockCreditRepository(),
	}
	f.engine = NewEngine(
		f.employees,
		f.settings,
		f.components,
		f.computations,
		f.deductions,
		attendanceService.NewAggregatorService(f.months),
		taxService.NewService(f.brackets),
		financeService.NewResolver(f.advances, f.credits),
	)
	return f
}

func (f *engineFixture) addEmployee(id string, base int64, hireDate string) {
	salary := decimal.NewFromInt(base)
	hired, _ := time.Parse("2006-01-02", hireDate)
	f.employees.AddEmployee(employee.Employee{
		ID:         id,
		BaseSalary: &salary,
		HireDate:   hired,
		IsActive:   true,
	})
}

func (f *engineFixture) addFullMonth(employeeID string, year, month, worked int) {
	m := attendance.Month{EmployeeID: employeeID, Year: year, Month: month}
	for day := 0; day < worked; day++ {
		m.Days[day] = attendance.DayWorked
	}
	f.months.AddMonth(m)
}

func boundPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// zeroTable taxes nothing; it isolates tests from bracket arithmetic.
func zeroTable() []tax.Bracket {
	return []tax.Bracket{
		{ID: "b0", LowerBound: decimal.Zero, Rate: decimal.Zero, Formula: tax.FormulaRate},
	}
}

// standardTable is exempt to 30000, then 10% less 3000.
func standardTable() []tax.Bracket {
	return []tax.Bracket{
		{ID: "b1", LowerBound: decimal.Zero, UpperBound: boundPtr("30000"), Rate: decimal.Zero, Formula: tax.FormulaRate},
		{ID: "b2", LowerBound: decimal.RequireFromString("30000"), Rate: decimal.RequireFromString("0.10"), Formula: tax.FormulaRateLessDeduction, FixedDeduction: decimal.RequireFromString("3000")},
	}
}

func TestCalculate_FullMonthExemptBracket(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(standardTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.BaseProrated.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected prorated base 30000, got %s", result.BaseProrated)
	}
	if !result.CotisableSalary.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected cotisable 30000, got %s", result.CotisableSalary)
	}
	if !result.SocialSecurityWithholding.Equal(decimal.RequireFromString("2700")) {
		t.Errorf("Expected social security 2700, got %s", result.SocialSecurityWithholding)
	}
	if !result.TaxableSalary.Equal(decimal.RequireFromString("27300")) {
		t.Errorf("Expected taxable 27300, got %s", result.TaxableSalary)
	}
	if result.TaxBracketID != "b1" {
		t.Errorf("Expected exempt bracket b1, got %s", result.TaxBracketID)
	}
	if !result.TaxAmount.IsZero() {
		t.Errorf("Expected zero tax, got %s", result.TaxAmount)
	}
	if !result.NetSalary.Equal(decimal.RequireFromString("27300")) {
		t.Errorf("Expected net 27300, got %s", result.NetSalary)
	}
}

func TestCalculate_Repeatable(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2018-03-15")
	f.addFullMonth("emp-1", 2025, 6, 24)
	f.brackets.ActivateTable(standardTable())

	ctx := context.Background()
	first, err := f.engine.CalculateForEmployee(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := f.engine.CalculateForEmployee(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results on recomputation:\n%+v\n%+v", first, second)
	}
}

func TestCalculate_Proration(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 26000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 13)
	f.brackets.ActivateTable(zeroTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.BaseProrated.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("Expected prorated base 13000 for half a month, got %s", result.BaseProrated)
	}
}

func TestCalculate_HolidaysCountAsWorked(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 26000, "2025-01-01")
	m := attendance.Month{EmployeeID: "emp-1", Year: 2025, Month: 6}
	for day := 0; day < 24; day++ {
		m.Days[day] = attendance.DayWorked
	}
	m.Days[24] = attendance.DayHoliday
	m.Days[25] = attendance.DayHoliday
	f.months.AddMonth(m)
	f.brackets.ActivateTable(zeroTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.WorkedEquivalentDays != 26 {
		t.Errorf("Expected 26 worked-equivalent days, got %d", result.WorkedEquivalentDays)
	}
	if !result.BaseProrated.Equal(decimal.NewFromInt(26000)) {
		t.Errorf("Expected full base with holidays paid, got %s", result.BaseProrated)
	}
}

func TestCalculate_SeniorityPremium(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2015-06-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(standardTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.SeniorityYears != 10 {
		t.Errorf("Expected 10 years of service, got %d", result.SeniorityYears)
	}
	// 10 years at 2% is 20%, below the 30% cap.
	if !result.SeniorityPremium.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("Expected seniority premium 6000, got %s", result.SeniorityPremium)
	}
	if !result.CotisableSalary.Equal(decimal.NewFromInt(36000)) {
		t.Errorf("Expected cotisable 36000, got %s", result.CotisableSalary)
	}
	// 36000 - 3240 = 32760 taxable, 10% less 3000 = 276.
	if !result.TaxAmount.Equal(decimal.RequireFromString("276")) {
		t.Errorf("Expected tax 276, got %s", result.TaxAmount)
	}
}

func TestCalculate_SeniorityRateCapped(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2000-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// 25 years at 2% would be 50%; the cap holds it at 30%.
	if !result.SeniorityPremium.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("Expected capped premium 9000, got %s", result.SeniorityPremium)
	}
}

func TestCalculate_NightShiftPremium(t *testing.T) {
	f := newEngineFixture()
	salary := decimal.NewFromInt(30000)
	hired, _ := time.Parse("2006-01-02", "2025-01-01")
	f.employees.AddEmployee(employee.Employee{
		ID:              "emp-1",
		BaseSalary:      &salary,
		HireDate:        hired,
		IsNightSecurity: true,
		IsActive:        true,
	})
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())

	result, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.NightShiftPremium.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("Expected night shift premium 4500, got %s", result.NightShiftPremium)
	}
	if !result.CotisableSalary.Equal(decimal.NewFromInt(34500)) {
		t.Errorf("Expected cotisable 34500, got %s", result.CotisableSalary)
	}
}

func TestCalculate_ComponentKindPlacement(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())
	ctx := context.Background()

	assign := func(name string, kind payroll.ComponentKind, amount int64) {
		c, err := f.components.CreateComponent(ctx, payroll.Component{Name: name, Kind: kind, IsActive: true})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		_, err = f.components.AssignToEmployee(ctx, payroll.EmployeeComponent{
			EmployeeID:    "emp-1",
			ComponentID:   c.ID,
			Amount:        decimal.NewFromInt(amount),
			EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	assign("prime_rendement", payroll.ComponentBonusCotisable, 1000)
	assign("prime_transport", payroll.ComponentAllowanceTaxable, 500)
	assign("prime_panier", payroll.ComponentAllowanceNonTaxable, 200)

	result, err := f.engine.CalculateForEmployee(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The cotisable bonus enters before the withholding.
	if !result.CotisableSalary.Equal(decimal.NewFromInt(31000)) {
		t.Errorf("Expected cotisable 31000, got %s", result.CotisableSalary)
	}
	if !result.SocialSecurityWithholding.Equal(decimal.RequireFromString("2790")) {
		t.Errorf("Expected social security 2790, got %s", result.SocialSecurityWithholding)
	}
	// The taxable allowance skips the withholding but is taxed.
	if !result.TaxableSalary.Equal(decimal.RequireFromString("28710")) {
		t.Errorf("Expected taxable 28710, got %s", result.TaxableSalary)
	}
	// The non-taxable allowance lands after tax.
	if !result.NetSalary.Equal(decimal.RequireFromString("28910")) {
		t.Errorf("Expected net 28910, got %s", result.NetSalary)
	}
}

func TestCalculate_ExpiredComponentIgnored(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())
	ctx := context.Background()

	c, err := f.components.CreateComponent(ctx, payroll.Component{Name: "prime_rendement", Kind: payroll.ComponentBonusCotisable, IsActive: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	ended := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	_, err = f.components.AssignToEmployee(ctx, payroll.EmployeeComponent{
		EmployeeID:    "emp-1",
		ComponentID:   c.ID,
		Amount:        decimal.NewFromInt(1000),
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       &ended,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result, err := f.engine.CalculateForEmployee(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.CotisableSalary.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Expected expired assignment excluded, got cotisable %s", result.CotisableSalary)
	}
}

func TestCalculate_WithholdsAdvancesAndInstallments(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())
	ctx := context.Background()

	if _, err := f.advances.Create(ctx, finance.Advance{
		EmployeeID:  "emp-1",
		Amount:      decimal.NewFromInt(500),
		TargetYear:  2025,
		TargetMonth: 6,
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	credit := finance.Credit{
		EmployeeID:        "emp-1",
		TotalAmount:       decimal.NewFromInt(900),
		InstallmentCount:  3,
		InstallmentAmount: decimal.NewFromInt(300),
		Status:            finance.CreditStatusActive,
		FirstDueYear:      2025,
		FirstDueMonth:     6,
	}
	if _, err := f.credits.Create(ctx, credit, finance.BuildSchedule(credit)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result, err := f.engine.CalculateForEmployee(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.AdvancesDue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected advances due 500, got %s", result.AdvancesDue)
	}
	if !result.CreditInstallmentsDue.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected installments due 300, got %s", result.CreditInstallmentsDue)
	}
	if len(result.DueEntries) != 2 {
		t.Errorf("Expected 2 itemized entries, got %d", len(result.DueEntries))
	}
	// 27300 - 500 - 300
	if !result.NetSalary.Equal(decimal.RequireFromString("26500")) {
		t.Errorf("Expected net 26500, got %s", result.NetSalary)
	}
}

func TestCalculate_MissingAttendanceIsBusinessError(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.brackets.ActivateTable(zeroTable())

	_, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if !errors.Is(err, attendance.ErrNoAttendanceForPeriod) {
		t.Fatalf("Expected ErrNoAttendanceForPeriod, got %v", err)
	}
	if !payroll.IsBusinessError(err) {
		t.Error("Expected missing attendance classified as business error")
	}
}

func TestCalculate_NoBaseSalaryIsBusinessError(t *testing.T) {
	f := newEngineFixture()
	f.employees.AddEmployee(employee.Employee{ID: "emp-1", IsActive: true})
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(zeroTable())

	_, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if !errors.Is(err, payroll.ErrNoBaseSalary) {
		t.Fatalf("Expected ErrNoBaseSalary, got %v", err)
	}
	if !payroll.IsBusinessError(err) {
		t.Error("Expected missing base salary classified as business error")
	}
}

func TestCalculate_NoActiveBracketTable(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)

	_, err := f.engine.CalculateForEmployee(context.Background(), "emp-1", 2025, 6)
	if !errors.Is(err, tax.ErrNoActiveVersion) {
		t.Fatalf("Expected ErrNoActiveVersion, got %v", err)
	}
	if payroll.IsBusinessError(err) {
		t.Error("Expected a missing bracket table to be a system fault, not a business error")
	}
}

func TestComputeAndStore_OverwritesPriorRow(t *testing.T) {
	f := newEngineFixture()
	f.addEmployee("emp-1", 30000, "2025-01-01")
	f.addFullMonth("emp-1", 2025, 6, 26)
	f.brackets.ActivateTable(standardTable())
	ctx := context.Background()

	first, err := f.engine.ComputeAndStore(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Attendance changes, then the period is recomputed.
	f.addFullMonth("emp-1", 2025, 6, 13)
	second, err := f.engine.ComputeAndStore(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if second.NetSalary.Equal(first.NetSalary) {
		t.Error("Expected recomputation to reflect changed attendance")
	}

	stored, err := f.engine.StoredComputation(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !stored.NetSalary.Equal(second.NetSalary) {
		t.Errorf("Expected stored row overwritten, got %s", stored.NetSalary)
	}
	if f.computations.UpsertCount != 2 {
		t.Errorf("Expected 2 upserts, got %d", f.computations.UpsertCount)
	}
}

package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	"github.com/shopspring/decimal"
)

type periodKey struct {
	EmployeeID string
	Year       int
	Month      int
}

// MockMonthRepository is an in-memory attendance.MonthRepository.
type MockMonthRepository struct {
	Months map[periodKey]attendance.Month
}

func NewMockMonthRepository() *MockMonthRepository {
	return &MockMonthRepository{Months: make(map[periodKey]attendance.Month)}
}

func (m *MockMonthRepository) GetByEmployeePeriod(_ context.Context, employeeID string, year, month int) (attendance.Month, error) {
	if rec, ok := m.Months[periodKey{employeeID, year, month}]; ok {
		return rec, nil
	}
	return attendance.Month{}, attendance.ErrNoAttendanceForPeriod
}

func (m *MockMonthRepository) Upsert(_ context.Context, rec attendance.Month) (attendance.Month, error) {
	key := periodKey{rec.EmployeeID, rec.Year, rec.Month}
	if existing, ok := m.Months[key]; ok {
		if existing.Locked {
			return attendance.Month{}, attendance.ErrMonthLocked
		}
		rec.ID = existing.ID
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.Months[key] = rec
	return rec, nil
}

func (m *MockMonthRepository) SetLocked(_ context.Context, employeeID string, year, month int, locked bool) error {
	key := periodKey{employeeID, year, month}
	rec, ok := m.Months[key]
	if !ok {
		return attendance.ErrNoAttendanceForPeriod
	}
	rec.Locked = locked
	m.Months[key] = rec
	return nil
}

// AddMonth stores a month directly (helper for tests).
func (m *MockMonthRepository) AddMonth(rec attendance.Month) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.Months[periodKey{rec.EmployeeID, rec.Year, rec.Month}] = rec
}

// MockEmployeeRepository is an in-memory employee.EmployeeRepository.
type MockEmployeeRepository struct {
	Employees map[string]employee.Employee
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{Employees: make(map[string]employee.Employee)}
}

func (m *MockEmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := m.Employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) GetActive(_ context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range m.Employees {
		if emp.IsActive {
			result = append(result, emp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockEmployeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	m.Employees[emp.ID] = emp
	return emp, nil
}

// AddEmployee stores an employee directly (helper for tests).
func (m *MockEmployeeRepository) AddEmployee(emp employee.Employee) {
	m.Employees[emp.ID] = emp
}

// MockAccrualRepository is an in-memory leave.AccrualRepository.
type MockAccrualRepository struct {
	Periods map[periodKey]leave.AccrualPeriod
}

func NewMockAccrualRepository() *MockAccrualRepository {
	return &MockAccrualRepository{Periods: make(map[periodKey]leave.AccrualPeriod)}
}

func (m *MockAccrualRepository) Upsert(_ context.Context, p leave.AccrualPeriod) (leave.AccrualPeriod, error) {
	key := periodKey{p.EmployeeID, p.Year, p.Month}
	if existing, ok := m.Periods[key]; ok {
		p.ID = existing.ID
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.Periods[key] = p
	return p, nil
}

func (m *MockAccrualRepository) GetByEmployeePeriod(_ context.Context, employeeID string, year, month int) (leave.AccrualPeriod, error) {
	if p, ok := m.Periods[periodKey{employeeID, year, month}]; ok {
		return p, nil
	}
	return leave.AccrualPeriod{}, leave.ErrAccrualNotFound
}

func (m *MockAccrualRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.AccrualPeriod, error) {
	var result []leave.AccrualPeriod
	for _, p := range m.Periods {
		if p.EmployeeID == employeeID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

func (m *MockAccrualRepository) SumThrough(_ context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range m.Periods {
		if p.EmployeeID != employeeID {
			continue
		}
		if p.Year < year || (p.Year == year && p.Month <= month) {
			total = total.Add(p.AccruedDays)
		}
	}
	return total, nil
}

// MockDeductionRepository is an in-memory leave.DeductionRepository.
type MockDeductionRepository struct {
	Deductions map[string]leave.Deduction
}

func NewMockDeductionRepository() *MockDeductionRepository {
	return &MockDeductionRepository{Deductions: make(map[string]leave.Deduction)}
}

func (m *MockDeductionRepository) Create(_ context.Context, d leave.Deduction) (leave.Deduction, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	m.Deductions[d.ID] = d
	return d, nil
}

func (m *MockDeductionRepository) GetByID(_ context.Context, id string) (leave.Deduction, error) {
	if d, ok := m.Deductions[id]; ok {
		return d, nil
	}
	return leave.Deduction{}, leave.ErrDeductionNotFound
}

func (m *MockDeductionRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.Deduction, error) {
	var result []leave.Deduction
	for _, d := range m.Deductions {
		if d.EmployeeID == employeeID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *MockDeductionRepository) ListByChargePeriod(_ context.Context, employeeID string, year, month int) ([]leave.Deduction, error) {
	var result []leave.Deduction
	for _, d := range m.Deductions {
		if d.EmployeeID == employeeID && d.ChargeYear == year && d.ChargeMonth == month {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *MockDeductionRepository) HasReversal(_ context.Context, id string) (bool, error) {
	for _, d := range m.Deductions {
		if d.ReversesID != nil && *d.ReversesID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockDeductionRepository) SumThrough(_ context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range m.Deductions {
		if d.EmployeeID != employeeID {
			continue
		}
		if d.ChargeYear < year || (d.ChargeYear == year && d.ChargeMonth <= month) {
			total = total.Add(d.Days)
		}
	}
	return total, nil
}

// MockBracketRepository is an in-memory tax.BracketRepository.
type MockBracketRepository struct {
	Versions map[string]tax.Version
	Brackets map[string][]tax.Bracket
}

func NewMockBracketRepository() *MockBracketRepository {
	return &MockBracketRepository{
		Versions: make(map[string]tax.Version),
		Brackets: make(map[string][]tax.Bracket),
	}
}

func (m *MockBracketRepository) GetActiveBrackets(_ context.Context) ([]tax.Bracket, error) {
	for id, v := range m.Versions {
		if v.Active {
			return m.Brackets[id], nil
		}
	}
	return nil, tax.ErrNoActiveVersion
}

func (m *MockBracketRepository) CreateVersion(_ context.Context, v tax.Version, brackets []tax.Bracket) (tax.Version, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	stored := make([]tax.Bracket, 0, len(brackets))
	for _, b := range brackets {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		b.VersionID = v.ID
		stored = append(stored, b)
	}
	m.Versions[v.ID] = v
	m.Brackets[v.ID] = stored
	return v, nil
}

func (m *MockBracketRepository) ActivateVersion(_ context.Context, id string) error {
	if _, ok := m.Versions[id]; !ok {
		return tax.ErrVersionNotFound
	}
	for vid, v := range m.Versions {
		v.Active = vid == id
		m.Versions[vid] = v
	}
	return nil
}

func (m *MockBracketRepository) ListVersions(_ context.Context) ([]tax.Version, error) {
	var result []tax.Version
	for _, v := range m.Versions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockBracketRepository) GetVersionBrackets(_ context.Context, versionID string) ([]tax.Bracket, error) {
	brackets, ok := m.Brackets[versionID]
	if !ok {
		return nil, tax.ErrVersionNotFound
	}
	return brackets, nil
}

// ActivateTable is a test helper: stores brackets as the active version.
func (m *MockBracketRepository) ActivateTable(brackets []tax.Bracket) {
	v, _ := m.CreateVersion(context.Background(), tax.Version{Label: "test"}, brackets)
	_ = m.ActivateVersion(context.Background(), v.ID)
}

// MockAdvanceRepository is an in-memory finance.AdvanceRepository.
type MockAdvanceRepository struct {
	Advances map[string]finance.Advance
}

func NewMockAdvanceRepository() *MockAdvanceRepository {
	return &MockAdvanceRepository{Advances: make(map[string]finance.Advance)}
}

func (m *MockAdvanceRepository) Create(_ context.Context, a finance.Advance) (finance.Advance, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.Advances[a.ID] = a
	return a, nil
}

func (m *MockAdvanceRepository) GetByID(_ context.Context, id string) (finance.Advance, error) {
	if a, ok := m.Advances[id]; ok {
		return a, nil
	}
	return finance.Advance{}, finance.ErrAdvanceNotFound
}

func (m *MockAdvanceRepository) ListByEmployee(_ context.Context, employeeID string) ([]finance.Advance, error) {
	var result []finance.Advance
	for _, a := range m.Advances {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockAdvanceRepository) DueForPeriod(_ context.Context, employeeID string, year, month int) ([]finance.Advance, error) {
	var result []finance.Advance
	for _, a := range m.Advances {
		if a.EmployeeID == employeeID && a.TargetYear == year && a.TargetMonth == month && !a.Withheld {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockAdvanceRepository) MarkWithheld(_ context.Context, id string) error {
	a, ok := m.Advances[id]
	if !ok {
		return finance.ErrAdvanceNotFound
	}
	a.Withheld = true
	m.Advances[id] = a
	return nil
}

// MockCreditRepository is an in-memory finance.CreditRepository.
type MockCreditRepository struct {
	Credits      map[string]finance.Credit
	Installments map[string]finance.Installment
}

func NewMockCreditRepository() *MockCreditRepository {
	return &MockCreditRepository{
		Credits:      make(map[string]finance.Credit),
		Installments: make(map[string]finance.Installment),
	}
}

func (m *MockCreditRepository) Create(_ context.Context, c finance.Credit, schedule []finance.Installment) (finance.Credit, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.AmountWithheld = decimal.Zero
	m.Credits[c.ID] = c
	for _, ins := range schedule {
		ins.ID = uuid.NewString()
		ins.CreditID = c.ID
		m.Installments[ins.ID] = ins
	}
	return c, nil
}

func (m *MockCreditRepository) GetByID(_ context.Context, id string) (finance.Credit, error) {
	if c, ok := m.Credits[id]; ok {
		return c, nil
	}
	return finance.Credit{}, finance.ErrCreditNotFound
}

func (m *MockCreditRepository) ListByEmployee(_ context.Context, employeeID string) ([]finance.Credit, error) {
	var result []finance.Credit
	for _, c := range m.Credits {
		if c.EmployeeID == employeeID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCreditRepository) GetInstallment(_ context.Context, id string) (finance.Installment, error) {
	if ins, ok := m.Installments[id]; ok {
		return ins, nil
	}
	return finance.Installment{}, finance.ErrInstallmentNotFound
}

func (m *MockCreditRepository) ListInstallments(_ context.Context, creditID string) ([]finance.Installment, error) {
	var result []finance.Installment
	for _, ins := range m.Installments {
		if ins.CreditID == creditID {
			result = append(result, ins)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })
	return result, nil
}

func (m *MockCreditRepository) DueInstallments(_ context.Context, employeeID string, year, month int) ([]finance.Installment, error) {
	var result []finance.Installment
	for _, ins := range m.Installments {
		credit, ok := m.Credits[ins.CreditID]
		if !ok || credit.EmployeeID != employeeID || credit.Status != finance.CreditStatusActive {
			continue
		}
		if ins.TargetYear == year && ins.TargetMonth == month && !ins.Withheld {
			result = append(result, ins)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })
	return result, nil
}

func (m *MockCreditRepository) Reschedule(_ context.Context, installmentID string, newYear, newMonth int) error {
	ins, ok := m.Installments[installmentID]
	if !ok {
		return finance.ErrInstallmentNotFound
	}
	if ins.Withheld {
		return finance.ErrInstallmentWithheld
	}
	ins.TargetYear = newYear
	ins.TargetMonth = newMonth
	m.Installments[installmentID] = ins
	return nil
}

func (m *MockCreditRepository) MarkInstallmentWithheld(_ context.Context, installmentID string) error {
	ins, ok := m.Installments[installmentID]
	if !ok {
		return finance.ErrInstallmentNotFound
	}
	ins.Withheld = true
	m.Installments[installmentID] = ins

	credit := m.Credits[ins.CreditID]
	credit.AmountWithheld = credit.AmountWithheld.Add(ins.Amount)
	if credit.AmountWithheld.GreaterThanOrEqual(credit.TotalAmount) {
		credit.Status = finance.CreditStatusSettled
	}
	m.Credits[ins.CreditID] = credit
	return nil
}

// MockSettingsRepository is an in-memory payroll.SettingsRepository.
type MockSettingsRepository struct {
	Settings *payroll.Settings
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Get(_ context.Context) (payroll.Settings, error) {
	if m.Settings == nil {
		return payroll.Settings{}, payroll.ErrSettingsNotFound
	}
	return *m.Settings, nil
}

func (m *MockSettingsRepository) Upsert(_ context.Context, s payroll.Settings) (payroll.Settings, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.Settings = &s
	return s, nil
}

// MockComponentRepository is an in-memory payroll.ComponentRepository.
type MockComponentRepository struct {
	Components  map[string]payroll.Component
	Assignments map[string]payroll.EmployeeComponent
}

func NewMockComponentRepository() *MockComponentRepository {
	return &MockComponentRepository{
		Components:  make(map[string]payroll.Component),
		Assignments: make(map[string]payroll.EmployeeComponent),
	}
}

func (m *MockComponentRepository) CreateComponent(_ context.Context, c payroll.Component) (payroll.Component, error) {
	for _, existing := range m.Components {
		if existing.Name == c.Name {
			return payroll.Component{}, payroll.ErrComponentNameExists
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.Components[c.ID] = c
	return c, nil
}

func (m *MockComponentRepository) GetComponentByID(_ context.Context, id string) (payroll.Component, error) {
	if c, ok := m.Components[id]; ok {
		return c, nil
	}
	return payroll.Component{}, payroll.ErrComponentNotFound
}

func (m *MockComponentRepository) ListComponents(_ context.Context, activeOnly bool) ([]payroll.Component, error) {
	var result []payroll.Component
	for _, c := range m.Components {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockComponentRepository) AssignToEmployee(_ context.Context, a payroll.EmployeeComponent) (payroll.EmployeeComponent, error) {
	component, ok := m.Components[a.ComponentID]
	if !ok {
		return payroll.EmployeeComponent{}, payroll.ErrComponentNotFound
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.ComponentName = &component.Name
	a.ComponentKind = &component.Kind
	m.Assignments[a.ID] = a
	return a, nil
}

func (m *MockComponentRepository) GetEmployeeComponents(_ context.Context, employeeID string, activeOnly bool) ([]payroll.EmployeeComponent, error) {
	var result []payroll.EmployeeComponent
	for _, a := range m.Assignments {
		if a.EmployeeID != employeeID {
			continue
		}
		if component, ok := m.Components[a.ComponentID]; ok {
			if activeOnly && !component.IsActive {
				continue
			}
			a.ComponentName = &component.Name
			a.ComponentKind = &component.Kind
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockComponentRepository) RemoveAssignment(_ context.Context, id string) error {
	if _, ok := m.Assignments[id]; !ok {
		return payroll.ErrAssignmentNotFound
	}
	delete(m.Assignments, id)
	return nil
}

// MockComputationRepository is an in-memory payroll.ComputationRepository.
type MockComputationRepository struct {
	Computations map[periodKey]payroll.Computation
	UpsertCount  int
}

func NewMockComputationRepository() *MockComputationRepository {
	return &MockComputationRepository{Computations: make(map[periodKey]payroll.Computation)}
}

func (m *MockComputationRepository) Upsert(_ context.Context, c payroll.Computation) error {
	m.UpsertCount++
	m.Computations[periodKey{c.EmployeeID, c.Year, c.Month}] = c
	return nil
}

func (m *MockComputationRepository) GetByEmployeePeriod(_ context.Context, employeeID string, year, month int) (payroll.Computation, error) {
	if c, ok := m.Computations[periodKey{employeeID, year, month}]; ok {
		return c, nil
	}
	return payroll.Computation{}, payroll.ErrComputationNotFound
}

func (m *MockComputationRepository) ListByPeriod(_ context.Context, year, month int) ([]payroll.Computation, error) {
	var result []payroll.Computation
	for key, c := range m.Computations {
		if key.Year == year && key.Month == month {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

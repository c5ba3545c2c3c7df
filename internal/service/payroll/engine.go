package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	financeService "github.com/mosala-hr/payroll-backend-go/internal/service/finance"
	taxService "github.com/mosala-hr/payroll-backend-go/internal/service/tax"
	"github.com/shopspring/decimal"
)

// Engine runs the full monthly computation for one employee. The step
// order is a contract: the tax base only exists once proration, cotisable
// bonuses and the social security withholding have been applied, so steps
// never reorder. Each computation is a pure function of its inputs and
// safe to run in parallel across employees.
type Engine struct {
	employeeRepo    employee.EmployeeRepository
	settingsRepo    payroll.SettingsRepository
	componentRepo   payroll.ComponentRepository
	computationRepo payroll.ComputationRepository
	deductionRepo   leave.DeductionRepository
	aggregator      *attendanceService.AggregatorService
	taxSvc          *taxService.Service
	ledger          *financeService.Resolver
}

func NewEngine(
	employeeRepo employee.EmployeeRepository,
	settingsRepo payroll.SettingsRepository,
	componentRepo payroll.ComponentRepository,
	computationRepo payroll.ComputationRepository,
	deductionRepo leave.DeductionRepository,
	aggregator *attendanceService.AggregatorService,
	taxSvc *taxService.Service,
	ledger *financeService.Resolver,
) *Engine {
	return &Engine{
		employeeRepo:    employeeRepo,
		settingsRepo:    settingsRepo,
		componentRepo:   componentRepo,
		computationRepo: computationRepo,
		deductionRepo:   deductionRepo,
		aggregator:      aggregator,
		taxSvc:          taxSvc,
		ledger:          ledger,
	}
}

func (e *Engine) settings(ctx context.Context) (payroll.Settings, error) {
	settings, err := e.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.DefaultSettings(), nil
		}
		return payroll.Settings{}, err
	}
	return settings, nil
}

// CalculateForEmployee loads settings and the active bracket table itself.
// Batch runs use Calculate with a shared snapshot instead.
func (e *Engine) CalculateForEmployee(ctx context.Context, employeeID string, year, month int) (payroll.Computation, error) {
	settings, err := e.settings(ctx)
	if err != nil {
		return payroll.Computation{}, err
	}
	resolver, err := e.taxSvc.ActiveResolver(ctx)
	if err != nil {
		return payroll.Computation{}, err
	}
	return e.Calculate(ctx, employeeID, year, month, settings, resolver)
}

// Calculate runs steps 1-9 against a caller-provided settings and bracket
// snapshot. Intermediate sums stay unrounded; only the tax amount and the
// net salary are finalized half-up to 2 decimals.
func (e *Engine) Calculate(
	ctx context.Context,
	employeeID string,
	year, month int,
	settings payroll.Settings,
	resolver *taxService.Resolver,
) (payroll.Computation, error) {
	emp, err := e.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Computation{}, err
	}
	if emp.BaseSalary == nil || emp.BaseSalary.IsZero() {
		return payroll.Computation{}, fmt.Errorf("employee %s: %w", employeeID, payroll.ErrNoBaseSalary)
	}

	totals, err := e.aggregator.TotalsForPeriod(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Computation{}, err
	}

	result := payroll.Computation{
		EmployeeID:             employeeID,
		Year:                   year,
		Month:                  month,
		WorkedDays:             totals.Worked,
		HolidayDays:            totals.Holiday,
		AbsentDays:             totals.Absent,
		PaidLeaveDays:          totals.PaidLeave,
		SickDays:               totals.Sick,
		StoppageDays:           totals.Stoppage,
		WorkedEquivalentDays:   totals.WorkedEquivalent,
		ContractualWorkingDays: settings.ContractualWorkingDays,
		BaseSalary:             *emp.BaseSalary,
		SocialSecurityRate:     settings.SocialSecurityRate,
	}

	// Step 1 - prorate the base over the contractual month
	result.BaseProrated = emp.BaseSalary.
		Mul(decimal.NewFromInt(int64(totals.WorkedEquivalent))).
		Div(decimal.NewFromInt(int64(settings.ContractualWorkingDays)))

	// Step 2 - cotisable salary
	result.SeniorityYears = emp.YearsOfService(year, month)
	seniorityRate := settings.SeniorityRatePerYear.Mul(decimal.NewFromInt(int64(result.SeniorityYears)))
	if seniorityRate.GreaterThan(settings.SeniorityRateCap) {
		seniorityRate = settings.SeniorityRateCap
	}
	result.SeniorityPremium = result.BaseProrated.Mul(seniorityRate)

	result.NightShiftPremium = decimal.Zero
	if emp.IsNightSecurity {
		result.NightShiftPremium = result.BaseProrated.Mul(settings.NightShiftRate)
	}

	components, err := e.componentRepo.GetEmployeeComponents(ctx, employeeID, true)
	if err != nil {
		return payroll.Computation{}, err
	}
	cotisableBonuses := decimal.Zero
	taxableAllowances := decimal.Zero
	nonTaxableAllowances := decimal.Zero
	for _, c := range components {
		if c.ComponentKind == nil || !c.ActiveFor(year, month) {
			continue
		}
		name := c.ComponentID
		if c.ComponentName != nil {
			name = *c.ComponentName
		}
		switch *c.ComponentKind {
		case payroll.ComponentBonusCotisable:
			cotisableBonuses = cotisableBonuses.Add(c.Amount)
			if result.CotisableBonuses == nil {
				result.CotisableBonuses = make(map[string]decimal.Decimal)
			}
			result.CotisableBonuses[name] = c.Amount
		case payroll.ComponentAllowanceTaxable:
			taxableAllowances = taxableAllowances.Add(c.Amount)
			if result.TaxableAllowances == nil {
				result.TaxableAllowances = make(map[string]decimal.Decimal)
			}
			result.TaxableAllowances[name] = c.Amount
		case payroll.ComponentAllowanceNonTaxable:
			nonTaxableAllowances = nonTaxableAllowances.Add(c.Amount)
			if result.NonTaxableAllowances == nil {
				result.NonTaxableAllowances = make(map[string]decimal.Decimal)
			}
			result.NonTaxableAllowances[name] = c.Amount
		}
	}

	result.CotisableSalary = result.BaseProrated.
		Add(result.SeniorityPremium).
		Add(result.NightShiftPremium).
		Add(cotisableBonuses)

	// Step 3 - mandatory social security withholding
	result.SocialSecurityWithholding = result.CotisableSalary.Mul(settings.SocialSecurityRate)

	// Steps 4-5 - taxable salary
	result.TaxableAllowancesTotal = taxableAllowances
	result.TaxableSalary = result.CotisableSalary.
		Sub(result.SocialSecurityWithholding).
		Add(taxableAllowances)

	// Step 6 - progressive tax
	resolution, err := resolver.Resolve(result.TaxableSalary)
	if err != nil {
		return payroll.Computation{}, err
	}
	result.TaxBracketID = resolution.BracketID
	result.TaxAmount = resolution.Tax

	// Step 7 - advances and credit installments falling due
	due, err := e.ledger.DueForPeriod(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Computation{}, err
	}
	result.AdvancesDue = due.AdvancesTotal
	result.CreditInstallmentsDue = due.InstallmentsTotal
	result.DueEntries = due.Entries

	// Step 8 - leave days charged to this period, reported for the payslip;
	// the attendance split already priced them, so they never reduce pay
	// twice.
	result.LeaveDaysDeducted, err = e.leaveDaysFor(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Computation{}, err
	}

	// Step 9 - net
	result.NonTaxableAllowancesTotal = nonTaxableAllowances
	result.HousewifePremium = decimal.Zero
	if emp.HousewifeAllowance {
		result.HousewifePremium = settings.HousewifePremium
	}
	result.NetSalary = result.TaxableSalary.
		Sub(result.TaxAmount).
		Sub(result.AdvancesDue).
		Sub(result.CreditInstallmentsDue).
		Add(nonTaxableAllowances).
		Add(result.HousewifePremium).
		Round(2)

	return result, nil
}

func (e *Engine) leaveDaysFor(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	entries, err := e.deductionRepo.ListByChargePeriod(ctx, employeeID, year, month)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list leave deductions for %s %d-%02d: %w", employeeID, year, month, err)
	}
	total := decimal.Zero
	for _, d := range entries {
		total = total.Add(d.Days)
	}
	return total, nil
}

// ComputeAndStore persists the result as a full-row overwrite on
// (employee, year, month). Storage is the only serialization point; the
// upsert is last-write-wins, never a partial merge.
func (e *Engine) ComputeAndStore(ctx context.Context, employeeID string, year, month int) (payroll.Computation, error) {
	result, err := e.CalculateForEmployee(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Computation{}, err
	}
	if err := e.computationRepo.Upsert(ctx, result); err != nil {
		return payroll.Computation{}, fmt.Errorf("store computation for %s %d-%02d: %w", employeeID, year, month, err)
	}
	return result, nil
}

// StoredComputation returns a previously persisted result.
func (e *Engine) StoredComputation(ctx context.Context, employeeID string, year, month int) (payroll.Computation, error) {
	return e.computationRepo.GetByEmployeePeriod(ctx, employeeID, year, month)
}

// StoredComputations returns all persisted results of a period.
func (e *Engine) StoredComputations(ctx context.Context, year, month int) ([]payroll.Computation, error) {
	return e.computationRepo.ListByPeriod(ctx, year, month)
}

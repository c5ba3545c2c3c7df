package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

// AccrualReference carries the formula parameters so the engine never
// hard-codes them. Defaults come from payroll settings (30 reference days,
// 2.50 cap).
type AccrualReference struct {
	ReferenceDays int
	Cap           decimal.Decimal
}

// ComputeAccrual turns a period's worked-day count into accrued leave
// days: min(cap, round_half_up(worked/reference*cap, 2)). Monotonic
// non-decreasing in workedDays and bounded in [0, cap]. The worked figure
// must already exclude paid leave taken - the attendance aggregator's
// category split guarantees that, not this function.
func ComputeAccrual(workedDays decimal.Decimal, ref AccrualReference) (decimal.Decimal, error) {
	if workedDays.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", leave.ErrNegativeWorkedDays, workedDays)
	}
	accrued := workedDays.
		Div(decimal.NewFromInt(int64(ref.ReferenceDays))).
		Mul(ref.Cap).
		Round(2)
	if accrued.GreaterThan(ref.Cap) {
		return ref.Cap, nil
	}
	return accrued, nil
}

// AccrualEngine maintains the accrual side of the two-ledger model.
type AccrualEngine struct {
	accrualRepo  leave.AccrualRepository
	settingsRepo payroll.SettingsRepository
	aggregator   *attendanceService.AggregatorService
	now          func() time.Time
}

func NewAccrualEngine(
	accrualRepo leave.AccrualRepository,
	settingsRepo payroll.SettingsRepository,
	aggregator *attendanceService.AggregatorService,
) *AccrualEngine {
	return &AccrualEngine{
		accrualRepo:  accrualRepo,
		settingsRepo: settingsRepo,
		aggregator:   aggregator,
		now:          time.Now,
	}
}

func (e *AccrualEngine) reference(ctx context.Context) (payroll.Settings, error) {
	settings, err := e.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.DefaultSettings(), nil
		}
		return payroll.Settings{}, err
	}
	return settings, nil
}

// accrualWorkedDays picks the categories that count as leave-generating
// work. Worked and holiday always count; paid leave never does; sick and
// stoppage only when settings opt them in.
func accrualWorkedDays(t attendanceService.Totals, settings payroll.Settings) int {
	days := t.WorkedEquivalent
	if settings.AccrualCountsSick {
		days += t.Sick
	}
	if settings.AccrualCountsStoppage {
		days += t.Stoppage
	}
	return days
}

// RecomputeForPeriod recomputes the accrual row for (employee, year,
// month) from current attendance and overwrites any prior row in place.
// Safe to call any number of times.
func (e *AccrualEngine) RecomputeForPeriod(ctx context.Context, employeeID string, year, month int) (leave.AccrualPeriod, error) {
	settings, err := e.reference(ctx)
	if err != nil {
		return leave.AccrualPeriod{}, err
	}

	totals, err := e.aggregator.TotalsForPeriod(ctx, employeeID, year, month)
	if err != nil {
		return leave.AccrualPeriod{}, err
	}

	worked := decimal.NewFromInt(int64(accrualWorkedDays(totals, settings)))
	accrued, err := ComputeAccrual(worked, AccrualReference{
		ReferenceDays: settings.LeaveReferenceDays,
		Cap:           settings.LeaveAccrualCap,
	})
	if err != nil {
		return leave.AccrualPeriod{}, err
	}

	return e.accrualRepo.Upsert(ctx, leave.AccrualPeriod{
		EmployeeID:  employeeID,
		Year:        year,
		Month:       month,
		WorkedDays:  worked,
		AccruedDays: accrued,
		ComputedAt:  e.now().UTC(),
	})
}

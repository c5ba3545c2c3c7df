package leave

import (
	"context"
	"errors"
	"testing"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	attendanceService "github.com/mosala-hr/payroll-backend-go/internal/service/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/testutil"
	"github.com/shopspring/decimal"
)

func defaultRef() AccrualReference {
	return AccrualReference{ReferenceDays: 30, Cap: decimal.RequireFromString("2.50")}
}

func TestComputeAccrual_ZeroWorked(t *testing.T) {
	got, err := ComputeAccrual(decimal.Zero, defaultRef())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(decimal.Zero) {
		t.Errorf("Expected 0, got %s", got)
	}
}

func TestComputeAccrual_HalfReference(t *testing.T) {
	got, err := ComputeAccrual(decimal.NewFromInt(15), defaultRef())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("Expected 1.25, got %s", got)
	}
}

func TestComputeAccrual_FullReference(t *testing.T) {
	got, err := ComputeAccrual(decimal.NewFromInt(30), defaultRef())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("Expected 2.50, got %s", got)
	}
}

func TestComputeAccrual_CappedAboveReference(t *testing.T) {
	got, err := ComputeAccrual(decimal.NewFromInt(31), defaultRef())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("Expected cap 2.50, got %s", got)
	}
}

func TestComputeAccrual_RoundsHalfUp(t *testing.T) {
	// 26/30*2.5 = 2.1666..., rounds to 2.17
	got, err := ComputeAccrual(decimal.NewFromInt(26), defaultRef())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.17")) {
		t.Errorf("Expected 2.17, got %s", got)
	}
}

func TestComputeAccrual_NegativeWorked(t *testing.T) {
	_, err := ComputeAccrual(decimal.NewFromInt(-1), defaultRef())
	if !errors.Is(err, leave.ErrNegativeWorkedDays) {
		t.Errorf("Expected ErrNegativeWorkedDays, got %v", err)
	}
}

func TestComputeAccrual_MonotonicNonDecreasing(t *testing.T) {
	prev := decimal.Zero
	for worked := 0; worked <= 31; worked++ {
		got, err := ComputeAccrual(decimal.NewFromInt(int64(worked)), defaultRef())
		if err != nil {
			t.Fatalf("Expected no error at %d worked, got %v", worked, err)
		}
		if got.LessThan(prev) {
			t.Fatalf("Accrual decreased from %s to %s at %d worked days", prev, got, worked)
		}
		if got.GreaterThan(defaultRef().Cap) {
			t.Fatalf("Accrual %s exceeds cap at %d worked days", got, worked)
		}
		prev = got
	}
}

func workedMonth(employeeID string, year, month, worked int) attendance.Month {
	m := attendance.Month{EmployeeID: employeeID, Year: year, Month: month}
	for day := 0; day < worked; day++ {
		m.Days[day] = attendance.DayWorked
	}
	return m
}

func TestRecomputeForPeriod_UsesDefaultsWhenNoSettings(t *testing.T) {
	accrualRepo := testutil.NewMockAccrualRepository()
	settingsRepo := testutil.NewMockSettingsRepository()
	monthRepo := testutil.NewMockMonthRepository()
	monthRepo.AddMonth(workedMonth("emp-1", 2025, 6, 26))

	engine := NewAccrualEngine(accrualRepo, settingsRepo, attendanceService.NewAggregatorService(monthRepo))

	period, err := engine.RecomputeForPeriod(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !period.WorkedDays.Equal(decimal.NewFromInt(26)) {
		t.Errorf("Expected 26 worked days, got %s", period.WorkedDays)
	}
	if !period.AccruedDays.Equal(decimal.RequireFromString("2.17")) {
		t.Errorf("Expected 2.17 accrued, got %s", period.AccruedDays)
	}
}

func TestRecomputeForPeriod_Idempotent(t *testing.T) {
	accrualRepo := testutil.NewMockAccrualRepository()
	settingsRepo := testutil.NewMockSettingsRepository()
	monthRepo := testutil.NewMockMonthRepository()
	monthRepo.AddMonth(workedMonth("emp-1", 2025, 6, 30))

	engine := NewAccrualEngine(accrualRepo, settingsRepo, attendanceService.NewAggregatorService(monthRepo))

	ctx := context.Background()
	first, err := engine.RecomputeForPeriod(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := engine.RecomputeForPeriod(ctx, "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected recomputation to overwrite the same row, got %s then %s", first.ID, second.ID)
	}
	if !first.AccruedDays.Equal(second.AccruedDays) {
		t.Errorf("Expected identical accrual, got %s then %s", first.AccruedDays, second.AccruedDays)
	}

	total, err := accrualRepo.SumThrough(ctx, "emp-1", 2025, 12)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !total.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("Expected a single 2.50 row after rerun, got %s", total)
	}
}

func TestRecomputeForPeriod_SickDaysOptIn(t *testing.T) {
	accrualRepo := testutil.NewMockAccrualRepository()
	settingsRepo := testutil.NewMockSettingsRepository()
	monthRepo := testutil.NewMockMonthRepository()

	m := workedMonth("emp-1", 2025, 6, 24)
	m.Days[24] = attendance.DaySick
	m.Days[25] = attendance.DaySick
	monthRepo.AddMonth(m)

	settings := payroll.DefaultSettings()
	settings.AccrualCountsSick = true
	if _, err := settingsRepo.Upsert(context.Background(), settings); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	engine := NewAccrualEngine(accrualRepo, settingsRepo, attendanceService.NewAggregatorService(monthRepo))

	period, err := engine.RecomputeForPeriod(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !period.WorkedDays.Equal(decimal.NewFromInt(26)) {
		t.Errorf("Expected sick days to count toward 26, got %s", period.WorkedDays)
	}
}

func TestRecomputeForPeriod_PaidLeaveNeverCounts(t *testing.T) {
	accrualRepo := testutil.NewMockAccrualRepository()
	settingsRepo := testutil.NewMockSettingsRepository()
	monthRepo := testutil.NewMockMonthRepository()

	m := workedMonth("emp-1", 2025, 6, 20)
	for day := 20; day < 26; day++ {
		m.Days[day] = attendance.DayPaidLeave
	}
	monthRepo.AddMonth(m)

	engine := NewAccrualEngine(accrualRepo, settingsRepo, attendanceService.NewAggregatorService(monthRepo))

	period, err := engine.RecomputeForPeriod(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !period.WorkedDays.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected paid leave excluded, got %s worked days", period.WorkedDays)
	}
}

func TestRecomputeForPeriod_MissingAttendance(t *testing.T) {
	accrualRepo := testutil.NewMockAccrualRepository()
	settingsRepo := testutil.NewMockSettingsRepository()
	monthRepo := testutil.NewMockMonthRepository()

	engine := NewAccrualEngine(accrualRepo, settingsRepo, attendanceService.NewAggregatorService(monthRepo))

	_, err := engine.RecomputeForPeriod(context.Background(), "emp-1", 2025, 6)
	if !errors.Is(err, attendance.ErrNoAttendanceForPeriod) {
		t.Errorf("Expected ErrNoAttendanceForPeriod, got %v", err)
	}
}

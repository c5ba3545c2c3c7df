package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/testutil"
)

func monthWith(codes map[int]attendance.DayCode, year, month int) attendance.Month {
	m := attendance.Month{EmployeeID: "emp-1", Year: year, Month: month}
	for day, code := range codes {
		m.Days[day-1] = code
	}
	return m
}

func TestAggregate_CountsCategories(t *testing.T) {
	codes := make(map[int]attendance.DayCode)
	for day := 1; day <= 20; day++ {
		codes[day] = attendance.DayWorked
	}
	codes[21] = attendance.DayHoliday
	codes[22] = attendance.DayHoliday
	codes[23] = attendance.DayAbsent
	codes[24] = attendance.DayPaidLeave
	codes[25] = attendance.DaySick
	codes[26] = attendance.DayStoppage

	totals := Aggregate(monthWith(codes, 2025, 6))

	if totals.Worked != 20 {
		t.Errorf("Expected 20 worked, got %d", totals.Worked)
	}
	if totals.Holiday != 2 {
		t.Errorf("Expected 2 holidays, got %d", totals.Holiday)
	}
	if totals.Absent != 1 {
		t.Errorf("Expected 1 absent, got %d", totals.Absent)
	}
	if totals.PaidLeave != 1 {
		t.Errorf("Expected 1 paid leave, got %d", totals.PaidLeave)
	}
	if totals.Sick != 1 {
		t.Errorf("Expected 1 sick, got %d", totals.Sick)
	}
	if totals.Stoppage != 1 {
		t.Errorf("Expected 1 stoppage, got %d", totals.Stoppage)
	}
}

func TestAggregate_WorkedEquivalentCountsHolidays(t *testing.T) {
	codes := make(map[int]attendance.DayCode)
	for day := 1; day <= 24; day++ {
		codes[day] = attendance.DayWorked
	}
	codes[25] = attendance.DayHoliday
	codes[26] = attendance.DayHoliday

	totals := Aggregate(monthWith(codes, 2025, 6))

	if totals.WorkedEquivalent != 26 {
		t.Errorf("Expected worked equivalent 26, got %d", totals.WorkedEquivalent)
	}
}

func TestAggregate_UnsetDaysContributeNothing(t *testing.T) {
	totals := Aggregate(monthWith(map[int]attendance.DayCode{1: attendance.DayWorked}, 2025, 6))

	if totals.Worked != 1 {
		t.Errorf("Expected 1 worked, got %d", totals.Worked)
	}
	if totals.WorkedEquivalent != 1 {
		t.Errorf("Expected worked equivalent 1, got %d", totals.WorkedEquivalent)
	}
}

func TestAggregate_DaysBeyondMonthLengthIgnored(t *testing.T) {
	// April has 30 days; a stray code in slot 31 must not count.
	m := attendance.Month{EmployeeID: "emp-1", Year: 2025, Month: 4}
	m.Days[30] = attendance.DayWorked

	totals := Aggregate(m)

	if totals.Worked != 0 {
		t.Errorf("Expected 0 worked, got %d", totals.Worked)
	}
}

func TestTotalsForPeriod_MissingMonth(t *testing.T) {
	repo := testutil.NewMockMonthRepository()
	svc := NewAggregatorService(repo)

	_, err := svc.TotalsForPeriod(context.Background(), "emp-1", 2025, 6)
	if !errors.Is(err, attendance.ErrNoAttendanceForPeriod) {
		t.Errorf("Expected ErrNoAttendanceForPeriod, got %v", err)
	}
}

func TestTotalsForPeriod_AggregatesStoredMonth(t *testing.T) {
	repo := testutil.NewMockMonthRepository()
	codes := make(map[int]attendance.DayCode)
	for day := 1; day <= 26; day++ {
		codes[day] = attendance.DayWorked
	}
	repo.AddMonth(monthWith(codes, 2025, 6))

	svc := NewAggregatorService(repo)
	totals, err := svc.TotalsForPeriod(context.Background(), "emp-1", 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if totals.WorkedEquivalent != 26 {
		t.Errorf("Expected worked equivalent 26, got %d", totals.WorkedEquivalent)
	}
}

package attendance

import (
	"context"
	"fmt"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
)

// Totals is the per-category day count of one attendance month.
// WorkedEquivalent counts holidays as worked for pay purposes.
type Totals struct {
	Worked           int
	Absent           int
	PaidLeave        int
	Sick             int
	Holiday          int
	Stoppage         int
	WorkedEquivalent int
}

// Aggregate folds a month's day codes into category totals. Unset days and
// days beyond the month's length contribute nothing.
func Aggregate(m attendance.Month) Totals {
	var t Totals
	for day := 1; day <= m.DaysInMonth(); day++ {
		switch m.Code(day) {
		case attendance.DayWorked:
			t.Worked++
		case attendance.DayAbsent:
			t.Absent++
		case attendance.DayPaidLeave:
			t.PaidLeave++
		case attendance.DaySick:
			t.Sick++
		case attendance.DayHoliday:
			t.Holiday++
		case attendance.DayStoppage:
			t.Stoppage++
		}
	}
	t.WorkedEquivalent = t.Worked + t.Holiday
	return t
}

type AggregatorService struct {
	monthRepo attendance.MonthRepository
}

func NewAggregatorService(monthRepo attendance.MonthRepository) *AggregatorService {
	return &AggregatorService{monthRepo: monthRepo}
}

// TotalsForPeriod aggregates the stored month for (employeeID, year, month).
// A missing record surfaces attendance.ErrNoAttendanceForPeriod - an
// expected per-employee condition, not a system fault.
func (s *AggregatorService) TotalsForPeriod(ctx context.Context, employeeID string, year, month int) (Totals, error) {
	m, err := s.monthRepo.GetByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		return Totals{}, fmt.Errorf("aggregate attendance for %s %d-%02d: %w", employeeID, year, month, err)
	}
	return Aggregate(m), nil
}

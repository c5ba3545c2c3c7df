package attendance

import (
	"context"
	"strconv"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
)

// Service covers attendance capture: writing day codes and flipping the
// lock flag. The payroll core only reads; locking decisions belong to the
// external finalization workflow.
type Service struct {
	monthRepo attendance.MonthRepository
}

func NewService(monthRepo attendance.MonthRepository) *Service {
	return &Service{monthRepo: monthRepo}
}

func (s *Service) UpsertMonth(ctx context.Context, req attendance.UpsertMonthRequest) (attendance.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthResponse{}, err
	}

	m := attendance.Month{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
	}
	for raw, code := range req.Days {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 1 || day > m.DaysInMonth() {
			continue
		}
		parsed, err := attendance.ParseDayCode(code)
		if err != nil {
			return attendance.MonthResponse{}, err
		}
		m.Days[day-1] = parsed
	}

	stored, err := s.monthRepo.Upsert(ctx, m)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	return attendance.NewMonthResponse(stored), nil
}

func (s *Service) GetMonth(ctx context.Context, employeeID string, year, month int) (attendance.MonthResponse, error) {
	m, err := s.monthRepo.GetByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	return attendance.NewMonthResponse(m), nil
}

func (s *Service) SetLocked(ctx context.Context, employeeID string, year, month int, locked bool) error {
	return s.monthRepo.SetLocked(ctx, employeeID, year, month, locked)
}

package leave

import (
	"context"
	"fmt"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
)

// Service owns the deduction ledger and the balance query. Accrual and
// deduction are deliberately separate ledgers: an append-mostly audit log
// pair, never collapsed into a running balance field.
type Service struct {
	accrualRepo   leave.AccrualRepository
	deductionRepo leave.DeductionRepository
}

func NewService(accrualRepo leave.AccrualRepository, deductionRepo leave.DeductionRepository) *Service {
	return &Service{accrualRepo: accrualRepo, deductionRepo: deductionRepo}
}

// RecordDeduction appends a consumption entry charged against a payroll
// period. The period charged may differ from the dates the leave was
// taken.
func (s *Service) RecordDeduction(ctx context.Context, req leave.RecordDeductionRequest, createdBy string) (leave.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.DeductionResponse{}, err
	}

	from, _ := validator.IsValidDate(req.TakenFrom)
	to, _ := validator.IsValidDate(req.TakenTo)

	created, err := s.deductionRepo.Create(ctx, leave.Deduction{
		EmployeeID:  req.EmployeeID,
		Days:        req.Days,
		ChargeYear:  req.ChargeYear,
		ChargeMonth: req.ChargeMonth,
		TakenFrom:   from,
		TakenTo:     to,
		Type:        leave.DeductionType(req.Type),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return leave.DeductionResponse{}, err
	}
	return leave.NewDeductionResponse(created), nil
}

// ReverseDeduction cancels an entry by appending its negation, keeping the
// audit trail intact. A deduction can be reversed at most once, and a
// reversal cannot itself be reversed.
func (s *Service) ReverseDeduction(ctx context.Context, deductionID, createdBy string) (leave.DeductionResponse, error) {
	original, err := s.deductionRepo.GetByID(ctx, deductionID)
	if err != nil {
		return leave.DeductionResponse{}, err
	}
	if original.IsReversal() {
		return leave.DeductionResponse{}, fmt.Errorf("%w: %s is itself a reversal", leave.ErrDeductionAlreadyReversed, deductionID)
	}

	reversed, err := s.deductionRepo.HasReversal(ctx, deductionID)
	if err != nil {
		return leave.DeductionResponse{}, err
	}
	if reversed {
		return leave.DeductionResponse{}, leave.ErrDeductionAlreadyReversed
	}

	created, err := s.deductionRepo.Create(ctx, leave.Deduction{
		EmployeeID:  original.EmployeeID,
		Days:        original.Days.Neg(),
		ChargeYear:  original.ChargeYear,
		ChargeMonth: original.ChargeMonth,
		TakenFrom:   original.TakenFrom,
		TakenTo:     original.TakenTo,
		Type:        original.Type,
		ReversesID:  &original.ID,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return leave.DeductionResponse{}, err
	}
	return leave.NewDeductionResponse(created), nil
}

// Balance as of a period: accruals up to and including it minus deductions
// charged up to and including it. Both sides aggregate in storage, and a
// negative result is a representable fact, not an error - rejecting it is
// external policy.
func (s *Service) Balance(ctx context.Context, employeeID string, year, month int) (leave.BalanceResponse, error) {
	accrued, err := s.accrualRepo.SumThrough(ctx, employeeID, year, month)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("sum accruals: %w", err)
	}
	deducted, err := s.deductionRepo.SumThrough(ctx, employeeID, year, month)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("sum deductions: %w", err)
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Accrued:    accrued,
		Deducted:   deducted,
		Balance:    accrued.Sub(deducted),
	}, nil
}

func (s *Service) ListDeductions(ctx context.Context, employeeID string) ([]leave.DeductionResponse, error) {
	entries, err := s.deductionRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	result := make([]leave.DeductionResponse, 0, len(entries))
	for _, d := range entries {
		result = append(result, leave.NewDeductionResponse(d))
	}
	return result, nil
}

func (s *Service) ListAccruals(ctx context.Context, employeeID string) ([]leave.AccrualResponse, error) {
	periods, err := s.accrualRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	result := make([]leave.AccrualResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, leave.NewAccrualResponse(p))
	}
	return result, nil
}

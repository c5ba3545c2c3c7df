package finance

import (
	"context"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
)

// Service manages the standing advance and credit ledgers.
type Service struct {
	advanceRepo finance.AdvanceRepository
	creditRepo  finance.CreditRepository
}

func NewService(advanceRepo finance.AdvanceRepository, creditRepo finance.CreditRepository) *Service {
	return &Service{advanceRepo: advanceRepo, creditRepo: creditRepo}
}

func (s *Service) CreateAdvance(ctx context.Context, req finance.CreateAdvanceRequest) (finance.Advance, error) {
	if err := req.Validate(); err != nil {
		return finance.Advance{}, err
	}

	return s.advanceRepo.Create(ctx, finance.Advance{
		EmployeeID:  req.EmployeeID,
		Amount:      req.Amount,
		TargetYear:  req.TargetYear,
		TargetMonth: req.TargetMonth,
	})
}

// CreateCredit stores the credit and generates its full installment
// schedule: equal amounts rounded to 2 decimals, last one absorbing the
// rounding remainder.
func (s *Service) CreateCredit(ctx context.Context, req finance.CreateCreditRequest) (finance.Credit, error) {
	if err := req.Validate(); err != nil {
		return finance.Credit{}, err
	}

	credit := finance.Credit{
		EmployeeID:        req.EmployeeID,
		TotalAmount:       req.TotalAmount,
		InstallmentCount:  req.InstallmentCount,
		InstallmentAmount: finance.InstallmentAmountFor(req.TotalAmount, req.InstallmentCount),
		Status:            finance.CreditStatusActive,
		FirstDueYear:      req.FirstDueYear,
		FirstDueMonth:     req.FirstDueMonth,
	}

	return s.creditRepo.Create(ctx, credit, finance.BuildSchedule(credit))
}

// ProrogueInstallment moves a not-yet-withheld installment to another
// period. Amount and sequence are untouched; already-withheld installments
// are never rescheduled.
func (s *Service) ProrogueInstallment(ctx context.Context, installmentID string, req finance.ProrogueRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	ins, err := s.creditRepo.GetInstallment(ctx, installmentID)
	if err != nil {
		return err
	}
	if ins.Withheld {
		return finance.ErrInstallmentWithheld
	}

	return s.creditRepo.Reschedule(ctx, installmentID, req.NewYear, req.NewMonth)
}

// SettlePeriod marks every entry that fell due in the period as withheld,
// once an external workflow confirms the period was paid out.
func (s *Service) SettlePeriod(ctx context.Context, employeeID string, year, month int) error {
	advances, err := s.advanceRepo.DueForPeriod(ctx, employeeID, year, month)
	if err != nil {
		return err
	}
	for _, a := range advances {
		if err := s.advanceRepo.MarkWithheld(ctx, a.ID); err != nil {
			return err
		}
	}

	installments, err := s.creditRepo.DueInstallments(ctx, employeeID, year, month)
	if err != nil {
		return err
	}
	for _, ins := range installments {
		if err := s.creditRepo.MarkInstallmentWithheld(ctx, ins.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ListAdvances(ctx context.Context, employeeID string) ([]finance.Advance, error) {
	return s.advanceRepo.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListCredits(ctx context.Context, employeeID string) ([]finance.Credit, error) {
	return s.creditRepo.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListInstallments(ctx context.Context, creditID string) ([]finance.Installment, error) {
	return s.creditRepo.ListInstallments(ctx, creditID)
}

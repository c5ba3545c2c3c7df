package finance

import "context"

// AdvanceRepository - interface for salary_advances table
type AdvanceRepository interface {
	Create(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error)
	// DueForPeriod returns unwithheld advances targeting (year, month).
	DueForPeriod(ctx context.Context, employeeID string, year, month int) ([]Advance, error)
	MarkWithheld(ctx context.Context, id string) error
}

// CreditRepository - interface for credits / credit_installments tables
type CreditRepository interface {
	// Create stores the credit and its full installment schedule in one
	// transaction.
	Create(ctx context.Context, c Credit, schedule []Installment) (Credit, error)
	GetByID(ctx context.Context, id string) (Credit, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Credit, error)
	GetInstallment(ctx context.Context, id string) (Installment, error)
	ListInstallments(ctx context.Context, creditID string) ([]Installment, error)
	// DueInstallments returns unwithheld installments of active credits
	// targeting (year, month) for the employee.
	DueInstallments(ctx context.Context, employeeID string, year, month int) ([]Installment, error)
	// Reschedule moves an installment's target period. Implementations must
	// refuse withheld installments.
	Reschedule(ctx context.Context, installmentID string, newYear, newMonth int) error
	// MarkInstallmentWithheld flips the flag, advances the credit's
	// amount_withheld and settles the credit once fully withheld, in one
	// transaction.
	MarkInstallmentWithheld(ctx context.Context, installmentID string) error
}

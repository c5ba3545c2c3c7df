package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccrualRepository - interface for leave_accrual_periods table
type AccrualRepository interface {
	// Upsert overwrites the full row keyed (employee_id, year, month).
	Upsert(ctx context.Context, p AccrualPeriod) (AccrualPeriod, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (AccrualPeriod, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AccrualPeriod, error)
	// SumThrough aggregates accrued days over all periods up to and
	// including (year, month). Implementations must aggregate in the store,
	// not replay the ledger row by row.
	SumThrough(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}

// DeductionRepository - interface for leave_deductions table
type DeductionRepository interface {
	Create(ctx context.Context, d Deduction) (Deduction, error)
	GetByID(ctx context.Context, id string) (Deduction, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Deduction, error)
	ListByChargePeriod(ctx context.Context, employeeID string, year, month int) ([]Deduction, error)
	// HasReversal reports whether a reversing entry referencing id exists.
	HasReversal(ctx context.Context, id string) (bool, error)
	// SumThrough aggregates deducted days charged to periods up to and
	// including (year, month); reversals count with their negative sign.
	SumThrough(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}

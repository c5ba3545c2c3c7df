package leave

import "errors"

var (
	ErrAccrualNotFound          = errors.New("leave accrual period not found")
	ErrDeductionNotFound        = errors.New("leave deduction not found")
	ErrDeductionAlreadyReversed = errors.New("leave deduction already reversed")
	ErrDeductionNotPositive     = errors.New("leave deduction days must be positive")
	ErrNegativeWorkedDays       = errors.New("worked days must not be negative")
	ErrInvalidDeductionType     = errors.New("invalid leave deduction type")
)

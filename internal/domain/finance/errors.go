package finance

import "errors"

var (
	ErrAdvanceNotFound      = errors.New("advance not found")
	ErrCreditNotFound       = errors.New("credit not found")
	ErrInstallmentNotFound  = errors.New("installment not found")
	ErrInstallmentWithheld  = errors.New("installment already withheld, cannot reschedule")
	ErrAdvanceWithheld      = errors.New("advance already withheld")
	ErrAmountNotPositive    = errors.New("amount must be positive")
	ErrInstallmentCountLow  = errors.New("installment count must be at least 1")
	ErrCreditAlreadySettled = errors.New("credit already settled")
)

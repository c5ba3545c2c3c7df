package finance

import (
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	TargetYear  int             `json:"target_year"`
	TargetMonth int             `json:"target_month"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if !validator.IsValidPeriod(r.TargetYear, r.TargetMonth) {
		errs = append(errs, validator.ValidationError{Field: "target_period", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCreditRequest struct {
	EmployeeID       string          `json:"employee_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	InstallmentCount int             `json:"installment_count"`
	FirstDueYear     int             `json:"first_due_year"`
	FirstDueMonth    int             `json:"first_due_month"`
}

func (r *CreateCreditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.TotalAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "total_amount", Message: "must be positive"})
	}
	if r.InstallmentCount < 1 {
		errs = append(errs, validator.ValidationError{Field: "installment_count", Message: "must be at least 1"})
	}
	if !validator.IsValidPeriod(r.FirstDueYear, r.FirstDueMonth) {
		errs = append(errs, validator.ValidationError{Field: "first_due_period", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProrogueRequest struct {
	NewYear  int `json:"new_year"`
	NewMonth int `json:"new_month"`
}

func (r *ProrogueRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.NewYear, r.NewMonth) {
		errs = append(errs, validator.ValidationError{Field: "new_period", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DueEntry identifies one ledger entry contributing to a period's
// withholdings, for payslip itemization.
type DueEntry struct {
	Kind     string          `json:"kind"` // "advance" or "installment"
	EntryID  string          `json:"entry_id"`
	CreditID string          `json:"credit_id,omitempty"`
	Sequence int             `json:"sequence,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// DueSummary is what the salary engine withholds for a period.
type DueSummary struct {
	AdvancesTotal     decimal.Decimal `json:"advances_total"`
	InstallmentsTotal decimal.Decimal `json:"installments_total"`
	Entries           []DueEntry      `json:"entries"`
}

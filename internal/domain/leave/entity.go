package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualPeriod is the entitlement earned by one employee in one payroll
// period. Unique per (employee, year, month); recomputation overwrites the
// row in place, it never appends a duplicate.
type AccrualPeriod struct {
	ID          string
	EmployeeID  string
	Year        int
	Month       int
	WorkedDays  decimal.Decimal
	AccruedDays decimal.Decimal
	ComputedAt  time.Time
}

// DeductionType enum
type DeductionType string

const (
	DeductionAnnual         DeductionType = "annual"
	DeductionCircumstance   DeductionType = "circumstance"
	DeductionCompensatory   DeductionType = "compensatory"
	DeductionRegularization DeductionType = "regularization"
)

// Deduction is one leave-consumption event, charged against a payroll
// period that may differ from the dates the leave was taken. Entries are
// immutable once created; corrections go through a reversing entry
// (negative days, ReversesID set), never an in-place edit.
type Deduction struct {
	ID          string
	EmployeeID  string
	Days        decimal.Decimal
	ChargeYear  int
	ChargeMonth int
	TakenFrom   time.Time
	TakenTo     time.Time
	Type        DeductionType
	ReversesID  *string
	CreatedBy   string
	CreatedAt   time.Time
}

// IsReversal reports whether this entry cancels another one.
func (d Deduction) IsReversal() bool {
	return d.ReversesID != nil
}

package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a single cash disbursement scheduled to be withheld from the
// salary of one target (month, year).
type Advance struct {
	ID          string
	EmployeeID  string
	Amount      decimal.Decimal
	TargetYear  int
	TargetMonth int
	Withheld    bool
	GrantedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreditStatus enum
type CreditStatus string

const (
	CreditStatusActive  CreditStatus = "active"
	CreditStatusSettled CreditStatus = "settled"
)

// Credit is a loan repaid through monthly installments withheld from
// salary. InstallmentAmount is computed at creation; AmountWithheld is the
// running total of withheld installments.
type Credit struct {
	ID                string
	EmployeeID        string
	TotalAmount       decimal.Decimal
	InstallmentCount  int
	InstallmentAmount decimal.Decimal
	AmountWithheld    decimal.Decimal
	Status            CreditStatus
	FirstDueYear      int
	FirstDueMonth     int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Installment is one scheduled withholding of a credit. Prorogation moves
// TargetYear/TargetMonth of a not-yet-withheld installment; amount and
// sequence never change, and withheld installments are never rescheduled.
type Installment struct {
	ID          string
	CreditID    string
	Sequence    int
	Amount      decimal.Decimal
	TargetYear  int
	TargetMonth int
	Withheld    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

/// BuildSchedule derives the installment rows for a credit: equal monthly
// amounts rounded half-up to 2 decimals, the last installment absorbing the
// rounding remainder so the schedule sums exactly to the total.
func BuildSchedule(c Credit) []Installment {
	schedule := make([]Installment, 0, c.InstallmentCount)
	year, month := c.FirstDueYear, c.FirstDueMonth
	paid := decimal.Zero
	for seq := 1; seq <= c.InstallmentCount; seq++ {
		amount := c.InstallmentAmount
		if seq == c.InstallmentCount {
			amount = c.TotalAmount.Sub(paid)
		}
		schedule = append(schedule, Installment{
			CreditID:    c.ID,
			Sequence:    seq,
			Amount:      amount,
			TargetYear:  year,
			TargetMonth: month,
		})
		paid = paid.Add(amount)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return schedule
}

// InstallmentAmountFor splits a total into count equal parts rounded
// half-up to the currency's 2 minor-unit decimals.
func InstallmentAmountFor(total decimal.Decimal, count int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormulaKind enum - how a bracket turns taxable amount into tax
type FormulaKind string

const (
	// FormulaRate: tax = rate * taxable
	FormulaRate FormulaKind = "rate"
	// FormulaRateLessDeduction: tax = rate * taxable - fixed_deduction
	FormulaRateLessDeduction FormulaKind = "rate_less_deduction"
)

// Bracket is one range of an ordered, non-overlapping bracket table.
// UpperBound nil means the range is open-ended; exactly the last bracket
// of a well-formed table is unbounded.
type Bracket struct {
	ID             string
	VersionID      string
	LowerBound     decimal.Decimal
	UpperBound     *decimal.Decimal
	Rate           decimal.Decimal
	Formula        FormulaKind
	FixedDeduction decimal.Decimal
}

// Contains reports whether amount falls in [LowerBound, UpperBound).
// An exact boundary amount belongs to the bracket whose lower bound it
// equals, never the preceding one.
func (b Bracket) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.LowerBound) {
		return false
	}
	if b.UpperBound != nil && amount.GreaterThanOrEqual(*b.UpperBound) {
		return false
	}
	return true
}

// Version groups the brackets of one published table. Exactly one version
// is active at any time.
type Version struct {
	ID        string
	Label     string
	Active    bool
	CreatedAt time.Time
}

// Resolution is the itemized outcome of resolving a taxable amount.
type Resolution struct {
	BracketID string
	Tax       decimal.Decimal
}

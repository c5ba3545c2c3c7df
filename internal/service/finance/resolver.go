package finance

import (
	"context"
	"fmt"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Resolver answers the salary engine's question: how much of this
// employee's standing advances and credit installments falls due in the
// target period, and which entries make up the total.
type Resolver struct {
	advanceRepo finance.AdvanceRepository
	creditRepo  finance.CreditRepository
}

func NewResolver(advanceRepo finance.AdvanceRepository, creditRepo finance.CreditRepository) *Resolver {
	return &Resolver{advanceRepo: advanceRepo, creditRepo: creditRepo}
}

// DueForPeriod sums unwithheld advances targeting the period and the
// installments of active credits due in it, itemized for the payslip.
func (r *Resolver) DueForPeriod(ctx context.Context, employeeID string, year, month int) (finance.DueSummary, error) {
	summary := finance.DueSummary{
		AdvancesTotal:     decimal.Zero,
		InstallmentsTotal: decimal.Zero,
	}

	advances, err := r.advanceRepo.DueForPeriod(ctx, employeeID, year, month)
	if err != nil {
		return finance.DueSummary{}, fmt.Errorf("resolve advances due for %s %d-%02d: %w", employeeID, year, month, err)
	}
	for _, a := range advances {
		summary.AdvancesTotal = summary.AdvancesTotal.Add(a.Amount)
		summary.Entries = append(summary.Entries, finance.DueEntry{
			Kind:    "advance",
			EntryID: a.ID,
			Amount:  a.Amount,
		})
	}

	installments, err := r.creditRepo.DueInstallments(ctx, employeeID, year, month)
	if err != nil {
		return finance.DueSummary{}, fmt.Errorf("resolve installments due for %s %d-%02d: %w", employeeID, year, month, err)
	}
	for _, ins := range installments {
		summary.InstallmentsTotal = summary.InstallmentsTotal.Add(ins.Amount)
		summary.Entries = append(summary.Entries, finance.DueEntry{
			Kind:     "installment",
			EntryID:  ins.ID,
			CreditID: ins.CreditID,
			Sequence: ins.Sequence,
			Amount:   ins.Amount,
		})
	}

	return summary, nil
}

package payroll

import (
	"context"
	"fmt"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
)

// BatchRunner iterates the engine over a set of employees. One employee's
// failure never aborts the run: each outcome is recorded as a success, a
// business error or a system error. Settings and the bracket table are
// snapshotted once per run, so mid-run updates only affect later runs.
type BatchRunner struct {
	engine       *Engine
	employeeRepo employee.EmployeeRepository
}

func NewBatchRunner(engine *Engine, employeeRepo employee.EmployeeRepository) *BatchRunner {
	return &BatchRunner{engine: engine, employeeRepo: employeeRepo}
}

// Run computes the period for the given employees, or for every active
// employee when none are named. Context cancellation stops issuing further
// computations; outcomes already collected are returned with the error.
func (b *BatchRunner) Run(ctx context.Context, req payroll.BatchRequest) (payroll.BatchSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchSummary{}, err
	}

	ids := req.EmployeeIDs
	if len(ids) == 0 {
		active, err := b.employeeRepo.GetActive(ctx)
		if err != nil {
			return payroll.BatchSummary{}, fmt.Errorf("list active employees: %w", err)
		}
		for _, emp := range active {
			ids = append(ids, emp.ID)
		}
	}

	settings, err := b.engine.settings(ctx)
	if err != nil {
		return payroll.BatchSummary{}, err
	}
	resolver, err := b.engine.taxSvc.ActiveResolver(ctx)
	if err != nil {
		// A broken bracket table would fail every employee identically;
		// surface it once as the batch's own failure.
		return payroll.BatchSummary{}, err
	}

	summary := payroll.BatchSummary{Year: req.Year, Month: req.Month}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := b.engine.Calculate(ctx, id, req.Year, req.Month, settings, resolver)
		if err != nil {
			entry := payroll.BatchEntry{EmployeeID: id, Cause: err.Error()}
			if payroll.IsBusinessError(err) {
				entry.Status = payroll.BatchEntryBusinessError
				summary.BusinessErrors++
			} else {
				entry.Status = payroll.BatchEntrySystemError
				summary.SystemErrors++
			}
			summary.Entries = append(summary.Entries, entry)
			continue
		}

		if req.Store {
			if err := b.engine.computationRepo.Upsert(ctx, result); err != nil {
				summary.Entries = append(summary.Entries, payroll.BatchEntry{
					EmployeeID: id,
					Status:     payroll.BatchEntrySystemError,
					Cause:      err.Error(),
				})
				summary.SystemErrors++
				continue
			}
		}

		summary.Entries = append(summary.Entries, payroll.BatchEntry{
			EmployeeID:  id,
			Status:      payroll.BatchEntryOK,
			Computation: &result,
		})
		summary.Succeeded++
	}

	return summary, nil
}

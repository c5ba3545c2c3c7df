package attendance

import "context"

// MonthRepository - interface for attendance_months table
type MonthRepository interface {
	// GetByEmployeePeriod returns ErrNoAttendanceForPeriod when no record
	// exists for (employeeID, year, month).
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (Month, error)
	// Upsert overwrites the full day array for the period. Returns
	// ErrMonthLocked when the stored record is locked.
	Upsert(ctx context.Context, m Month) (Month, error)
	// SetLocked flips the lock flag. Locking is honored, not decided, by the
	// payroll core; unlock exists for the external finalization workflow.
	SetLocked(ctx context.Context, employeeID string, year, month int, locked bool) error
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
)

type monthRepository struct {
	db *database.DB
}

func NewMonthRepository(db *database.DB) attendance.MonthRepository {
	return &monthRepository{db: db}
}

func (r *monthRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (attendance.Month, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, days, locked, created_at, updated_at
		FROM attendance_months
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var m attendance.Month
	var days []string
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&m.ID, &m.EmployeeID, &m.Year, &m.Month, &days, &m.Locked, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Month{}, attendance.ErrNoAttendanceForPeriod
		}
		return attendance.Month{}, fmt.Errorf("failed to get attendance month: %w", err)
	}

	m.Days = dayArrayFromStrings(days)
	return m, nil
}

// Upsert overwrites the full day array. The conflict clause only updates
// unlocked rows, so a locked month comes back as no row at all.
func (r *monthRepository) Upsert(ctx context.Context, m attendance.Month) (attendance.Month, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_months (employee_id, year, month, days, locked)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			days = EXCLUDED.days,
			updated_at = NOW()
		WHERE attendance_months.locked = FALSE
		RETURNING id, employee_id, year, month, days, locked, created_at, updated_at
	`

	var stored attendance.Month
	var days []string
	err := q.QueryRow(ctx, query,
		m.EmployeeID, m.Year, m.Month, dayArrayToStrings(m.Days),
	).Scan(
		&stored.ID, &stored.EmployeeID, &stored.Year, &stored.Month, &days,
		&stored.Locked, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Month{}, attendance.ErrMonthLocked
		}
		return attendance.Month{}, fmt.Errorf("failed to upsert attendance month: %w", err)
	}

	stored.Days = dayArrayFromStrings(days)
	return stored, nil
}

func (r *monthRepository) SetLocked(ctx context.Context, employeeID string, year, month int, locked bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_months
		SET locked = $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, year, month, locked)
	if err != nil {
		return fmt.Errorf("failed to set attendance lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoAttendanceForPeriod
	}

	return nil
}

func dayArrayToStrings(days [attendance.MaxDaysInMonth]attendance.DayCode) []string {
	out := make([]string, attendance.MaxDaysInMonth)
	for i, code := range days {
		if code == "" {
			code = attendance.DayUnset
		}
		out[i] = string(code)
	}
	return out
}

func dayArrayFromStrings(raw []string) [attendance.MaxDaysInMonth]attendance.DayCode {
	var days [attendance.MaxDaysInMonth]attendance.DayCode
	for i := range days {
		if i < len(raw) && raw[i] != "" {
			days[i] = attendance.DayCode(raw[i])
		} else {
			days[i] = attendance.DayUnset
		}
	}
	return days
}

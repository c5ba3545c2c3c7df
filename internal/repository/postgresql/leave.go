package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// ========== ACCRUALS ==========

type accrualRepository struct {
	db *database.DB
}

func NewAccrualRepository(db *database.DB) leave.AccrualRepository {
	return &accrualRepository{db: db}
}

func (r *accrualRepository) Upsert(ctx context.Context, p leave.AccrualPeriod) (leave.AccrualPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_accrual_periods (employee_id, year, month, worked_days, accrued_days, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			worked_days = EXCLUDED.worked_days,
			accrued_days = EXCLUDED.accrued_days,
			computed_at = EXCLUDED.computed_at
		RETURNING id, employee_id, year, month, worked_days, accrued_days, computed_at
	`

	var stored leave.AccrualPeriod
	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.Year, p.Month, p.WorkedDays, p.AccruedDays, p.ComputedAt,
	).Scan(
		&stored.ID, &stored.EmployeeID, &stored.Year, &stored.Month,
		&stored.WorkedDays, &stored.AccruedDays, &stored.ComputedAt,
	)
	if err != nil {
		return leave.AccrualPeriod{}, fmt.Errorf("failed to upsert leave accrual: %w", err)
	}

	return stored, nil
}

func (r *accrualRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (leave.AccrualPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, worked_days, accrued_days, computed_at
		FROM leave_accrual_periods
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var p leave.AccrualPeriod
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&p.ID, &p.EmployeeID, &p.Year, &p.Month, &p.WorkedDays, &p.AccruedDays, &p.ComputedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.AccrualPeriod{}, leave.ErrAccrualNotFound
		}
		return leave.AccrualPeriod{}, fmt.Errorf("failed to get leave accrual: %w", err)
	}

	return p, nil
}

func (r *accrualRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.AccrualPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, worked_days, accrued_days, computed_at
		FROM leave_accrual_periods
		WHERE employee_id = $1
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave accruals: %w", err)
	}
	defer rows.Close()

	var periods []leave.AccrualPeriod
	for rows.Next() {
		var p leave.AccrualPeriod
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Year, &p.Month, &p.WorkedDays, &p.AccruedDays, &p.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave accrual: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *accrualRepository) SumThrough(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(accrued_days), 0)
		FROM leave_accrual_periods
		WHERE employee_id = $1
		  AND (year < $2 OR (year = $2 AND month <= $3))
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum leave accruals: %w", err)
	}

	return total, nil
}

// ========== DEDUCTIONS ==========

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) leave.DeductionRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) Create(ctx context.Context, d leave.Deduction) (leave.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_deductions (
			employee_id, days, charge_year, charge_month,
			taken_from, taken_to, type, reverses_id, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		d.EmployeeID, d.Days, d.ChargeYear, d.ChargeMonth,
		d.TakenFrom, d.TakenTo, d.Type, d.ReversesID, d.CreatedBy,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return leave.Deduction{}, fmt.Errorf("failed to create leave deduction: %w", err)
	}

	return d, nil
}

func (r *deductionRepository) GetByID(ctx context.Context, id string) (leave.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, days, charge_year, charge_month,
			   taken_from, taken_to, type, reverses_id, created_by, created_at
		FROM leave_deductions
		WHERE id = $1
	`

	var d leave.Deduction
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.EmployeeID, &d.Days, &d.ChargeYear, &d.ChargeMonth,
		&d.TakenFrom, &d.TakenTo, &d.Type, &d.ReversesID, &d.CreatedBy, &d.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Deduction{}, leave.ErrDeductionNotFound
		}
		return leave.Deduction{}, fmt.Errorf("failed to get leave deduction: %w", err)
	}

	return d, nil
}

func (r *deductionRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Deduction, error) {
	query := `
		SELECT id, employee_id, days, charge_year, charge_month,
			   taken_from, taken_to, type, reverses_id, created_by, created_at
		FROM leave_deductions
		WHERE employee_id = $1
		ORDER BY created_at
	`
	return r.queryDeductions(ctx, query, employeeID)
}

func (r *deductionRepository) ListByChargePeriod(ctx context.Context, employeeID string, year, month int) ([]leave.Deduction, error) {
	query := `
		SELECT id, employee_id, days, charge_year, charge_month,
			   taken_from, taken_to, type, reverses_id, created_by, created_at
		FROM leave_deductions
		WHERE employee_id = $1 AND charge_year = $2 AND charge_month = $3
		ORDER BY created_at
	`
	return r.queryDeductions(ctx, query, employeeID, year, month)
}

func (r *deductionRepository) queryDeductions(ctx context.Context, query string, args ...interface{}) ([]leave.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave deductions: %w", err)
	}
	defer rows.Close()

	var deductions []leave.Deduction
	for rows.Next() {
		var d leave.Deduction
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Days, &d.ChargeYear, &d.ChargeMonth,
			&d.TakenFrom, &d.TakenTo, &d.Type, &d.ReversesID, &d.CreatedBy, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (r *deductionRepository) HasReversal(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM leave_deductions WHERE reverses_id = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave deduction reversal: %w", err)
	}

	return exists, nil
}

func (r *deductionRepository) SumThrough(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_deductions
		WHERE employee_id = $1
		  AND (charge_year < $2 OR (charge_year = $2 AND charge_month <= $3))
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum leave deductions: %w", err)
	}

	return total, nil
}

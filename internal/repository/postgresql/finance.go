package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
)

// ========== ADVANCES ==========

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) finance.AdvanceRepository {
	return &advanceRepository{db: db}
}

func (r *advanceRepository) Create(ctx context.Context, a finance.Advance) (finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_advances (employee_id, amount, target_year, target_month, withheld, granted_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.Amount, a.TargetYear, a.TargetMonth, a.GrantedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return finance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, target_year, target_month, withheld, granted_at, created_at, updated_at
		FROM salary_advances
		WHERE id = $1
	`

	var a finance.Advance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.Amount, &a.TargetYear, &a.TargetMonth,
		&a.Withheld, &a.GrantedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return finance.Advance{}, finance.ErrAdvanceNotFound
		}
		return finance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]finance.Advance, error) {
	query := `
		SELECT id, employee_id, amount, target_year, target_month, withheld, granted_at, created_at, updated_at
		FROM salary_advances
		WHERE employee_id = $1
		ORDER BY target_year, target_month
	`
	return r.queryAdvances(ctx, query, employeeID)
}

func (r *advanceRepository) DueForPeriod(ctx context.Context, employeeID string, year, month int) ([]finance.Advance, error) {
	query := `
		SELECT id, employee_id, amount, target_year, target_month, withheld, granted_at, created_at, updated_at
		FROM salary_advances
		WHERE employee_id = $1 AND target_year = $2 AND target_month = $3 AND withheld = FALSE
		ORDER BY granted_at
	`
	return r.queryAdvances(ctx, query, employeeID, year, month)
}

func (r *advanceRepository) queryAdvances(ctx context.Context, query string, args ...interface{}) ([]finance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []finance.Advance
	for rows.Next() {
		var a finance.Advance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Amount, &a.TargetYear, &a.TargetMonth,
			&a.Withheld, &a.GrantedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, rows.Err()
}

func (r *advanceRepository) MarkWithheld(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances
		SET withheld = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark advance withheld: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return finance.ErrAdvanceNotFound
	}

	return nil
}

// ========== CREDITS ==========

type creditRepository struct {
	db *database.DB
}

func NewCreditRepository(db *database.DB) finance.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) Create(ctx context.Context, c finance.Credit, schedule []finance.Installment) (finance.Credit, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		insertCredit := `
			INSERT INTO credits (
				employee_id, total_amount, installment_count, installment_amount,
				amount_withheld, status, first_due_year, first_due_month
			) VALUES ($1, $2, $3, $4, 0, $5, $6, $7)
			RETURNING id, amount_withheld, created_at, updated_at
		`
		err := tx.QueryRow(ctx, insertCredit,
			c.EmployeeID, c.TotalAmount, c.InstallmentCount, c.InstallmentAmount,
			finance.CreditStatusActive, c.FirstDueYear, c.FirstDueMonth,
		).Scan(&c.ID, &c.AmountWithheld, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create credit: %w", err)
		}
		c.Status = finance.CreditStatusActive

		insertInstallment := `
			INSERT INTO credit_installments (credit_id, sequence, amount, target_year, target_month, withheld)
			VALUES ($1, $2, $3, $4, $5, FALSE)
		`
		for _, ins := range schedule {
			if _, err := tx.Exec(ctx, insertInstallment,
				c.ID, ins.Sequence, ins.Amount, ins.TargetYear, ins.TargetMonth,
			); err != nil {
				return fmt.Errorf("failed to create credit installment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return finance.Credit{}, err
	}

	return c, nil
}

func (r *creditRepository) GetByID(ctx context.Context, id string) (finance.Credit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, total_amount, installment_count, installment_amount,
			   amount_withheld, status, first_due_year, first_due_month, created_at, updated_at
		FROM credits
		WHERE id = $1
	`

	var c finance.Credit
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.TotalAmount, &c.InstallmentCount, &c.InstallmentAmount,
		&c.AmountWithheld, &c.Status, &c.FirstDueYear, &c.FirstDueMonth, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return finance.Credit{}, finance.ErrCreditNotFound
		}
		return finance.Credit{}, fmt.Errorf("failed to get credit: %w", err)
	}

	return c, nil
}

func (r *creditRepository) ListByEmployee(ctx context.Context, employeeID string) ([]finance.Credit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, total_amount, installment_count, installment_amount,
			   amount_withheld, status, first_due_year, first_due_month, created_at, updated_at
		FROM credits
		WHERE employee_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	defer rows.Close()

	var credits []finance.Credit
	for rows.Next() {
		var c finance.Credit
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.TotalAmount, &c.InstallmentCount, &c.InstallmentAmount,
			&c.AmountWithheld, &c.Status, &c.FirstDueYear, &c.FirstDueMonth, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		credits = append(credits, c)
	}

	return credits, rows.Err()
}

func (r *creditRepository) GetInstallment(ctx context.Context, id string) (finance.Installment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, credit_id, sequence, amount, target_year, target_month, withheld, created_at, updated_at
		FROM credit_installments
		WHERE id = $1
	`

	var ins finance.Installment
	err := q.QueryRow(ctx, query, id).Scan(
		&ins.ID, &ins.CreditID, &ins.Sequence, &ins.Amount,
		&ins.TargetYear, &ins.TargetMonth, &ins.Withheld, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return finance.Installment{}, finance.ErrInstallmentNotFound
		}
		return finance.Installment{}, fmt.Errorf("failed to get installment: %w", err)
	}

	return ins, nil
}

func (r *creditRepository) ListInstallments(ctx context.Context, creditID string) ([]finance.Installment, error) {
	query := `
		SELECT id, credit_id, sequence, amount, target_year, target_month, withheld, created_at, updated_at
		FROM credit_installments
		WHERE credit_id = $1
		ORDER BY sequence
	`
	return r.queryInstallments(ctx, query, creditID)
}

func (r *creditRepository) DueInstallments(ctx context.Context, employeeID string, year, month int) ([]finance.Installment, error) {
	query := `
		SELECT i.id, i.credit_id, i.sequence, i.amount, i.target_year, i.target_month, i.withheld, i.created_at, i.updated_at
		FROM credit_installments i
		JOIN credits c ON c.id = i.credit_id
		WHERE c.employee_id = $1 AND c.status = 'active'
		  AND i.target_year = $2 AND i.target_month = $3 AND i.withheld = FALSE
		ORDER BY i.sequence
	`
	return r.queryInstallments(ctx, query, employeeID, year, month)
}

func (r *creditRepository) queryInstallments(ctx context.Context, query string, args ...interface{}) ([]finance.Installment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []finance.Installment
	for rows.Next() {
		var ins finance.Installment
		if err := rows.Scan(
			&ins.ID, &ins.CreditID, &ins.Sequence, &ins.Amount,
			&ins.TargetYear, &ins.TargetMonth, &ins.Withheld, &ins.CreatedAt, &ins.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, ins)
	}

	return installments, rows.Err()
}

// Reschedule moves the target period of a not-yet-withheld installment.
// The update's withheld guard makes the refusal atomic.
func (r *creditRepository) Reschedule(ctx context.Context, installmentID string, newYear, newMonth int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE credit_installments
		SET target_year = $2, target_month = $3, updated_at = NOW()
		WHERE id = $1 AND withheld = FALSE
	`

	tag, err := q.Exec(ctx, query, installmentID, newYear, newMonth)
	if err != nil {
		return fmt.Errorf("failed to reschedule installment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from withheld.
		if _, getErr := r.GetInstallment(ctx, installmentID); getErr != nil {
			return getErr
		}
		return finance.ErrInstallmentWithheld
	}

	return nil
}

func (r *creditRepository) MarkInstallmentWithheld(ctx context.Context, installmentID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var creditID string
		var amount string

		markQuery := `
			UPDATE credit_installments
			SET withheld = TRUE, updated_at = NOW()
			WHERE id = $1 AND withheld = FALSE
			RETURNING credit_id, amount
		`
		err := tx.QueryRow(ctx, markQuery, installmentID).Scan(&creditID, &amount)
		if err != nil {
			if err == pgx.ErrNoRows {
				return finance.ErrInstallmentNotFound
			}
			return fmt.Errorf("failed to mark installment withheld: %w", err)
		}

		creditQuery := `
			UPDATE credits
			SET amount_withheld = amount_withheld + $2,
				status = CASE WHEN amount_withheld + $2 >= total_amount THEN 'settled' ELSE status END,
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, creditQuery, creditID, amount); err != nil {
			return fmt.Errorf("failed to advance credit withheld amount: %w", err)
		}
		return nil
	})
}

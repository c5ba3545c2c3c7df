package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, base_salary, hire_date, contract_end_date,
			   family_situation, is_driver, is_night_security, housewife_allowance,
			   is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Code, &e.FullName, &e.BaseSalary, &e.HireDate, &e.ContractEndDate,
		&e.FamilySituation, &e.IsDriver, &e.IsNightSecurity, &e.HousewifeAllowance,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, base_salary, hire_date, contract_end_date,
			   family_situation, is_driver, is_night_security, housewife_allowance,
			   is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.Code, &e.FullName, &e.BaseSalary, &e.HireDate, &e.ContractEndDate,
			&e.FamilySituation, &e.IsDriver, &e.IsNightSecurity, &e.HousewifeAllowance,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			code, full_name, base_salary, hire_date, contract_end_date,
			family_situation, is_driver, is_night_security, housewife_allowance, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.Code, e.FullName, e.BaseSalary, e.HireDate, e.ContractEndDate,
		e.FamilySituation, e.IsDriver, e.IsNightSecurity, e.HousewifeAllowance, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
)

// ========== SETTINGS ==========

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contractual_working_days, social_security_rate, leave_accrual_cap,
			   leave_reference_days, seniority_rate_per_year, seniority_rate_cap,
			   night_shift_rate, housewife_premium, accrual_counts_sick,
			   accrual_counts_stoppage, created_at, updated_at
		FROM calculation_settings
		LIMIT 1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.ContractualWorkingDays, &s.SocialSecurityRate, &s.LeaveAccrualCap,
		&s.LeaveReferenceDays, &s.SeniorityRatePerYear, &s.SeniorityRateCap,
		&s.NightShiftRate, &s.HousewifePremium, &s.AccrualCountsSick,
		&s.AccrualCountsStoppage, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get calculation settings: %w", err)
	}

	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	// Single-row table keyed by a constant singleton flag.
	query := `
		INSERT INTO calculation_settings (
			singleton, contractual_working_days, social_security_rate, leave_accrual_cap,
			leave_reference_days, seniority_rate_per_year, seniority_rate_cap,
			night_shift_rate, housewife_premium, accrual_counts_sick, accrual_counts_stoppage
		) VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (singleton) DO UPDATE SET
			contractual_working_days = EXCLUDED.contractual_working_days,
			social_security_rate = EXCLUDED.social_security_rate,
			leave_accrual_cap = EXCLUDED.leave_accrual_cap,
			leave_reference_days = EXCLUDED.leave_reference_days,
			seniority_rate_per_year = EXCLUDED.seniority_rate_per_year,
			seniority_rate_cap = EXCLUDED.seniority_rate_cap,
			night_shift_rate = EXCLUDED.night_shift_rate,
			housewife_premium = EXCLUDED.housewife_premium,
			accrual_counts_sick = EXCLUDED.accrual_counts_sick,
			accrual_counts_stoppage = EXCLUDED.accrual_counts_stoppage,
			updated_at = NOW()
		RETURNING id, contractual_working_days, social_security_rate, leave_accrual_cap,
			leave_reference_days, seniority_rate_per_year, seniority_rate_cap,
			night_shift_rate, housewife_premium, accrual_counts_sick,
			accrual_counts_stoppage, created_at, updated_at
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.ContractualWorkingDays, settings.SocialSecurityRate, settings.LeaveAccrualCap,
		settings.LeaveReferenceDays, settings.SeniorityRatePerYear, settings.SeniorityRateCap,
		settings.NightShiftRate, settings.HousewifePremium, settings.AccrualCountsSick,
		settings.AccrualCountsStoppage,
	).Scan(
		&s.ID, &s.ContractualWorkingDays, &s.SocialSecurityRate, &s.LeaveAccrualCap,
		&s.LeaveReferenceDays, &s.SeniorityRatePerYear, &s.SeniorityRateCap,
		&s.NightShiftRate, &s.HousewifePremium, &s.AccrualCountsSick,
		&s.AccrualCountsStoppage, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert calculation settings: %w", err)
	}

	return s, nil
}

// ========== COMPONENTS ==========

type componentRepository struct {
	db *database.DB
}

func NewComponentRepository(db *database.DB) payroll.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) CreateComponent(ctx context.Context, component payroll.Component) (payroll.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_components (name, kind, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, kind, description, is_active, created_at, updated_at
	`

	var c payroll.Component
	err := q.QueryRow(ctx, query,
		component.Name, component.Kind, component.Description, component.IsActive,
	).Scan(
		&c.ID, &c.Name, &c.Kind, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_component_name") {
			return payroll.Component{}, payroll.ErrComponentNameExists
		}
		return payroll.Component{}, fmt.Errorf("failed to create payroll component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) GetComponentByID(ctx context.Context, id string) (payroll.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, kind, description, is_active, created_at, updated_at
		FROM payroll_components
		WHERE id = $1
	`

	var c payroll.Component
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Kind, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Component{}, payroll.ErrComponentNotFound
		}
		return payroll.Component{}, fmt.Errorf("failed to get payroll component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, kind, description, is_active, created_at, updated_at
		FROM payroll_components
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll components: %w", err)
	}
	defer rows.Close()

	var components []payroll.Component
	for rows.Next() {
		var c payroll.Component
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Kind, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *componentRepository) AssignToEmployee(ctx context.Context, assignment payroll.EmployeeComponent) (payroll.EmployeeComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_components (employee_id, component_id, amount, effective_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.EmployeeID, assignment.ComponentID, assignment.Amount,
		assignment.EffectiveDate, assignment.EndDate,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "fk_employee_component_component") {
			return payroll.EmployeeComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.EmployeeComponent{}, fmt.Errorf("failed to assign payroll component: %w", err)
	}

	component, err := r.GetComponentByID(ctx, assignment.ComponentID)
	if err == nil {
		assignment.ComponentName = &component.Name
		assignment.ComponentKind = &component.Kind
	}

	return assignment, nil
}

func (r *componentRepository) GetEmployeeComponents(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.EmployeeComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ec.id, ec.employee_id, ec.component_id, ec.amount, ec.effective_date, ec.end_date,
			   ec.created_at, ec.updated_at, c.name, c.kind
		FROM employee_components ec
		JOIN payroll_components c ON c.id = ec.component_id
		WHERE ec.employee_id = $1
	`
	if activeOnly {
		query += ` AND c.is_active = TRUE`
	}
	query += ` ORDER BY ec.effective_date`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee components: %w", err)
	}
	defer rows.Close()

	var assignments []payroll.EmployeeComponent
	for rows.Next() {
		var a payroll.EmployeeComponent
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ComponentID, &a.Amount, &a.EffectiveDate, &a.EndDate,
			&a.CreatedAt, &a.UpdatedAt, &a.ComponentName, &a.ComponentKind,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee component: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

func (r *componentRepository) RemoveAssignment(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove component assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAssignmentNotFound
	}

	return nil
}

// ========== COMPUTATIONS ==========

type computationRepository struct {
	db *database.DB
}

func NewComputationRepository(db *database.DB) payroll.ComputationRepository {
	return &computationRepository{db: db}
}

// Upsert stores the full itemized result as one JSONB document keyed by
// (employee_id, year, month). A rerun replaces the document wholesale.
func (r *computationRepository) Upsert(ctx context.Context, c payroll.Computation) error {
	q := GetQuerier(ctx, r.db)

	details, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal computation: %w", err)
	}

	query := `
		INSERT INTO salary_computations (employee_id, year, month, net_salary, details)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			net_salary = EXCLUDED.net_salary,
			details = EXCLUDED.details,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, c.EmployeeID, c.Year, c.Month, c.NetSalary, details); err != nil {
		return fmt.Errorf("failed to upsert computation: %w", err)
	}

	return nil
}

func (r *computationRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.Computation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT details
		FROM salary_computations
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var details []byte
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&details); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Computation{}, payroll.ErrComputationNotFound
		}
		return payroll.Computation{}, fmt.Errorf("failed to get computation: %w", err)
	}

	var c payroll.Computation
	if err := json.Unmarshal(details, &c); err != nil {
		return payroll.Computation{}, fmt.Errorf("failed to unmarshal computation: %w", err)
	}

	return c, nil
}

func (r *computationRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.Computation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT details
		FROM salary_computations
		WHERE year = $1 AND month = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list computations: %w", err)
	}
	defer rows.Close()

	var computations []payroll.Computation
	for rows.Next() {
		var details []byte
		if err := rows.Scan(&details); err != nil {
			return nil, fmt.Errorf("failed to scan computation: %w", err)
		}
		var c payroll.Computation
		if err := json.Unmarshal(details, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal computation: %w", err)
		}
		computations = append(computations, c)
	}

	return computations, rows.Err()
}

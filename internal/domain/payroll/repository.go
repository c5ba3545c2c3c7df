package payroll

import "context"

// SettingsRepository - single-row calculation settings
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when no row has been stored yet;
	// services fall back to DefaultSettings.
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

// ComponentRepository - master components and their employee assignments
type ComponentRepository interface {
	CreateComponent(ctx context.Context, c Component) (Component, error)
	GetComponentByID(ctx context.Context, id string) (Component, error)
	ListComponents(ctx context.Context, activeOnly bool) ([]Component, error)
	AssignToEmployee(ctx context.Context, a EmployeeComponent) (EmployeeComponent, error)
	// GetEmployeeComponents returns assignments with joined component name
	// and kind.
	GetEmployeeComponents(ctx context.Context, employeeID string, activeOnly bool) ([]EmployeeComponent, error)
	RemoveAssignment(ctx context.Context, id string) error
}

// ComputationRepository persists computed results. The core computes fresh
// every time; storage is a caller decision, and a rerun for the same
// (employee, year, month) is a full-row overwrite - a single-writer
// upsert, never a partial-field merge.
type ComputationRepository interface {
	Upsert(ctx context.Context, c Computation) error
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (Computation, error)
	ListByPeriod(ctx context.Context, year, month int) ([]Computation, error)
}

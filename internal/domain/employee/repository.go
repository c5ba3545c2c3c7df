package employee

import "context"

// EmployeeRepository - read-mostly access to employee master data
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
}

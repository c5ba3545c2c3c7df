package employee

import (
	"context"
	"time"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
)

// Service is the thin registry surface. Master data is owned by the HR
// system; this service only stores what the calculation consumes.
type Service struct {
	employeeRepo employee.EmployeeRepository
}

func NewService(employeeRepo employee.EmployeeRepository) *Service {
	return &Service{employeeRepo: employeeRepo}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	var contractEnd *time.Time
	if req.ContractEndDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.ContractEndDate); err == nil {
			contractEnd = &parsed
		}
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:               req.Code,
		FullName:           req.FullName,
		BaseSalary:         req.BaseSalary,
		HireDate:           hireDate,
		ContractEndDate:    contractEnd,
		FamilySituation:    req.FamilySituation,
		IsDriver:           req.IsDriver,
		IsNightSecurity:    req.IsNightSecurity,
		HousewifeAllowance: req.HousewifeAllowance,
		IsActive:           true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *Service) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, employee.NewEmployeeResponse(e))
	}
	return result, nil
}

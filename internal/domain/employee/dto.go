package employee

import (
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Code               string           `json:"code"`
	FullName           string           `json:"full_name"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate           string           `json:"hire_date"`
	ContractEndDate    *string          `json:"contract_end_date,omitempty"`
	FamilySituation    string           `json:"family_situation"`
	IsDriver           bool             `json:"is_driver"`
	IsNightSecurity    bool             `json:"is_night_security"`
	HousewifeAllowance bool             `json:"housewife_allowance"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Code == "" {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if r.FullName == "" {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if r.ContractEndDate != nil {
		if _, ok := validator.IsValidDate(*r.ContractEndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "contract_end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                 string           `json:"id"`
	Code               string           `json:"code"`
	FullName           string           `json:"full_name"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate           string           `json:"hire_date"`
	ContractEndDate    *string          `json:"contract_end_date,omitempty"`
	FamilySituation    string           `json:"family_situation"`
	IsDriver           bool             `json:"is_driver"`
	IsNightSecurity    bool             `json:"is_night_security"`
	HousewifeAllowance bool             `json:"housewife_allowance"`
	IsActive           bool             `json:"is_active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		Code:               e.Code,
		FullName:           e.FullName,
		BaseSalary:         e.BaseSalary,
		HireDate:           e.HireDate.Format("2006-01-02"),
		FamilySituation:    e.FamilySituation,
		IsDriver:           e.IsDriver,
		IsNightSecurity:    e.IsNightSecurity,
		HousewifeAllowance: e.HousewifeAllowance,
		IsActive:           e.IsActive,
	}
	if e.ContractEndDate != nil {
		formatted := e.ContractEndDate.Format("2006-01-02")
		resp.ContractEndDate = &formatted
	}
	return resp
}

package payroll

import (
	"errors"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
)

var (
	ErrSettingsNotFound      = errors.New("calculation settings not found")
	ErrNoBaseSalary          = errors.New("employee has no base salary configured")
	ErrNegativeTaxableSalary = errors.New("taxable salary is negative")
	ErrComputationNotFound   = errors.New("salary computation not found")
	ErrComponentNotFound     = errors.New("payroll component not found")
	ErrComponentNameExists   = errors.New("payroll component name already exists")
	ErrAssignmentNotFound    = errors.New("component assignment not found")
	ErrInvalidComponentKind  = errors.New("invalid payroll component kind")
	ErrInvalidPeriod         = errors.New("invalid payroll period")
)

// businessErrors are the expected, per-employee recoverable failures. A
// batch surfaces them with a cause and moves on; anything else is treated
// as a system or data-integrity fault and flagged critical.
var businessErrors = []error{
	attendance.ErrNoAttendanceForPeriod,
	employee.ErrEmployeeNotFound,
	leave.ErrNegativeWorkedDays,
	ErrNoBaseSalary,
}

// IsBusinessError reports whether err is an expected per-employee business
// failure rather than a system fault.
func IsBusinessError(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}

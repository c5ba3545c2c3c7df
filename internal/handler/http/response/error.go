package response

import (
	"errors"
	"net/http"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/employee"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/leave"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoAttendanceForPeriod):
		NotFound(w, "No attendance grid for the period")
	case errors.Is(err, attendance.ErrMonthLocked):
		Conflict(w, "Attendance month is locked")
	case errors.Is(err, attendance.ErrInvalidDayCode):
		BadRequest(w, "Unknown attendance day code", nil)
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid period", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrAccrualNotFound):
		NotFound(w, "Leave accrual period not found")
	case errors.Is(err, leave.ErrDeductionNotFound):
		NotFound(w, "Leave deduction not found")
	case errors.Is(err, leave.ErrDeductionAlreadyReversed):
		Conflict(w, "Leave deduction already reversed")
	case errors.Is(err, leave.ErrDeductionNotPositive):
		BadRequest(w, "Deduction days must be positive", nil)
	case errors.Is(err, leave.ErrNegativeWorkedDays):
		BadRequest(w, "Worked days must not be negative", nil)
	case errors.Is(err, leave.ErrInvalidDeductionType):
		BadRequest(w, "Unknown leave deduction type", nil)

	// Tax domain errors
	case errors.Is(err, tax.ErrVersionNotFound):
		NotFound(w, "Tax bracket version not found")
	case errors.Is(err, tax.ErrNoActiveVersion):
		BadRequest(w, "No active tax bracket version", nil)
	case errors.Is(err, tax.ErrMalformedBracketTable):
		BadRequest(w, "Malformed tax bracket table", nil)
	case errors.Is(err, tax.ErrNoBracketForAmount):
		BadRequest(w, "No tax bracket covers the amount", nil)

	// Finance domain errors
	case errors.Is(err, finance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, finance.ErrCreditNotFound):
		NotFound(w, "Credit not found")
	case errors.Is(err, finance.ErrInstallmentNotFound):
		NotFound(w, "Installment not found")
	case errors.Is(err, finance.ErrInstallmentWithheld):
		Conflict(w, "Installment already withheld")
	case errors.Is(err, finance.ErrAdvanceWithheld):
		Conflict(w, "Advance already withheld")
	case errors.Is(err, finance.ErrCreditAlreadySettled):
		Conflict(w, "Credit already settled")
	case errors.Is(err, finance.ErrAmountNotPositive):
		BadRequest(w, "Amount must be positive", nil)
	case errors.Is(err, finance.ErrInstallmentCountLow):
		BadRequest(w, "Installment count must be at least 1", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, payroll.ErrComputationNotFound):
		NotFound(w, "Salary computation not found")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Payroll component not found")
	case errors.Is(err, payroll.ErrComponentNameExists):
		Conflict(w, "Payroll component name already exists")
	case errors.Is(err, payroll.ErrAssignmentNotFound):
		NotFound(w, "Component assignment not found")
	case errors.Is(err, payroll.ErrInvalidComponentKind):
		BadRequest(w, "Unknown payroll component kind", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

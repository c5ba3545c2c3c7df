package leave

import (
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordDeductionRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Days        decimal.Decimal `json:"days"`
	ChargeYear  int             `json:"charge_year"`
	ChargeMonth int             `json:"charge_month"`
	TakenFrom   string          `json:"taken_from"`
	TakenTo     string          `json:"taken_to"`
	Type        string          `json:"type"`
}

func (r *RecordDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}
	if !validator.IsValidPeriod(r.ChargeYear, r.ChargeMonth) {
		errs = append(errs, validator.ValidationError{Field: "charge_period", Message: "year/month out of range"})
	}
	if _, ok := validator.IsValidDate(r.TakenFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "taken_from", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.TakenTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "taken_to", Message: "must be YYYY-MM-DD"})
	}
	switch DeductionType(r.Type) {
	case DeductionAnnual, DeductionCircumstance, DeductionCompensatory, DeductionRegularization:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "unknown deduction type"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Days        decimal.Decimal `json:"days"`
	ChargeYear  int             `json:"charge_year"`
	ChargeMonth int             `json:"charge_month"`
	TakenFrom   string          `json:"taken_from"`
	TakenTo     string          `json:"taken_to"`
	Type        string          `json:"type"`
	ReversesID  *string         `json:"reverses_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
}

func NewDeductionResponse(d Deduction) DeductionResponse {
	return DeductionResponse{
		ID:          d.ID,
		EmployeeID:  d.EmployeeID,
		Days:        d.Days,
		ChargeYear:  d.ChargeYear,
		ChargeMonth: d.ChargeMonth,
		TakenFrom:   d.TakenFrom.Format("2006-01-02"),
		TakenTo:     d.TakenTo.Format("2006-01-02"),
		Type:        string(d.Type),
		ReversesID:  d.ReversesID,
		CreatedBy:   d.CreatedBy,
	}
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Accrued    decimal.Decimal `json:"accrued"`
	Deducted   decimal.Decimal `json:"deducted"`
	Balance    decimal.Decimal `json:"balance"`
}

type AccrualResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	WorkedDays  decimal.Decimal `json:"worked_days"`
	AccruedDays decimal.Decimal `json:"accrued_days"`
	ComputedAt  string          `json:"computed_at"`
}

func NewAccrualResponse(p AccrualPeriod) AccrualResponse {
	return AccrualResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Year:        p.Year,
		Month:       p.Month,
		WorkedDays:  p.WorkedDays,
		AccruedDays: p.AccruedDays,
		ComputedAt:  p.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

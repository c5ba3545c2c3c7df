package attendance

import "github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"

// UpsertMonthRequest carries a full month of day codes keyed by 1-based day.
type UpsertMonthRequest struct {
	EmployeeID string            `json:"-"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Days       map[string]string `json:"days"`
}

func (r *UpsertMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "year/month out of range"})
	}
	for day, code := range r.Days {
		if _, err := ParseDayCode(code); err != nil {
			errs = append(errs, validator.ValidationError{Field: "days." + day, Message: "unknown day code"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	Days       []string `json:"days"`
	Locked     bool     `json:"locked"`
}

func NewMonthResponse(m Month) MonthResponse {
	days := make([]string, m.DaysInMonth())
	for i := range days {
		days[i] = string(m.Code(i + 1))
	}
	return MonthResponse{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		Year:       m.Year,
		Month:      m.Month,
		Days:       days,
		Locked:     m.Locked,
	}
}

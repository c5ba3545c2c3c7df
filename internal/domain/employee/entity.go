package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee master data as consumed by the payroll core. The core never
// validates this beyond using it as given; it is maintained elsewhere.
type Employee struct {
	ID                 string
	Code               string
	FullName           string
	BaseSalary         *decimal.Decimal
	HireDate           time.Time
	ContractEndDate    *time.Time
	FamilySituation    string
	IsDriver           bool
	IsNightSecurity    bool
	HousewifeAllowance bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// YearsOfService counts full years between the hire date and the end of the
// given payroll period. Used for the seniority premium schedule.
func (e Employee) YearsOfService(year, month int) int {
	periodEnd := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	if periodEnd.Before(e.HireDate) {
		return 0
	}
	years := periodEnd.Year() - e.HireDate.Year()
	anniversary := e.HireDate.AddDate(years, 0, 0)
	if anniversary.After(periodEnd) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings - calculation parameters, single row with defaults. Every
// figure the engines use comes from here, never from constants in code.
type Settings struct {
	ID                     string
	ContractualWorkingDays int
	SocialSecurityRate     decimal.Decimal
	LeaveAccrualCap        decimal.Decimal
	LeaveReferenceDays     int
	SeniorityRatePerYear   decimal.Decimal
	SeniorityRateCap       decimal.Decimal
	NightShiftRate         decimal.Decimal
	HousewifePremium       decimal.Decimal
	AccrualCountsSick      bool
	AccrualCountsStoppage  bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultSettings are the statutory defaults applied when no settings row
// has been stored yet.
func DefaultSettings() Settings {
	return Settings{
		ContractualWorkingDays: 26,
		SocialSecurityRate:     decimal.NewFromFloat(0.09),
		LeaveAccrualCap:        decimal.RequireFromString("2.50"),
		LeaveReferenceDays:     30,
		SeniorityRatePerYear:   decimal.NewFromFloat(0.02),
		SeniorityRateCap:       decimal.NewFromFloat(0.30),
		NightShiftRate:         decimal.NewFromFloat(0.15),
		HousewifePremium:       decimal.Zero,
		AccrualCountsSick:      false,
		AccrualCountsStoppage:  false,
	}
}

// ComponentKind enum - where an assigned component enters the calculation
type ComponentKind string

const (
	// ComponentBonusCotisable joins the cotisable salary before the social
	// security withholding.
	ComponentBonusCotisable ComponentKind = "bonus_cotisable"
	// ComponentAllowanceTaxable skips the withholding but joins the taxable
	// salary.
	ComponentAllowanceTaxable ComponentKind = "allowance_taxable"
	// ComponentAllowanceNonTaxable is added after tax.
	ComponentAllowanceNonTaxable ComponentKind = "allowance_nontaxable"
)

// Component - master payroll component
type Component struct {
	ID          string
	Name        string
	Kind        ComponentKind
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmployeeComponent - component assignment to an employee
type EmployeeComponent struct {
	ID            string
	EmployeeID    string
	ComponentID   string
	Amount        decimal.Decimal
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	ComponentName *string
	ComponentKind *ComponentKind
}

// ActiveFor reports whether the assignment applies to a payroll period.
func (c EmployeeComponent) ActiveFor(year, month int) bool {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)
	if c.EffectiveDate.After(periodEnd) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(periodStart) {
		return false
	}
	return true
}

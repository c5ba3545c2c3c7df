package payroll

import (
	"github.com/mosala-hr/payroll-backend-go/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Computation is the fully itemized outcome of one monthly salary
// calculation. Every intermediate figure is retained because the payslip
// and audits need the full derivation, not just the net. The value carries
// no timestamp: recomputing with unchanged inputs yields an identical
// value, and the caller decides whether and how to persist it.
type Computation struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	// Step 1 - proration
	WorkedDays             int             `json:"worked_days"`
	HolidayDays            int             `json:"holiday_days"`
	AbsentDays             int             `json:"absent_days"`
	PaidLeaveDays          int             `json:"paid_leave_days"`
	SickDays               int             `json:"sick_days"`
	StoppageDays           int             `json:"stoppage_days"`
	WorkedEquivalentDays   int             `json:"worked_equivalent_days"`
	ContractualWorkingDays int             `json:"contractual_working_days"`
	BaseSalary             decimal.Decimal `json:"base_salary"`
	BaseProrated           decimal.Decimal `json:"base_prorated"`

	// Step 2 - cotisable salary
	SeniorityYears    int                        `json:"seniority_years"`
	SeniorityPremium  decimal.Decimal            `json:"seniority_premium"`
	NightShiftPremium decimal.Decimal            `json:"night_shift_premium"`
	CotisableBonuses  map[string]decimal.Decimal `json:"cotisable_bonuses,omitempty"`
	CotisableSalary   decimal.Decimal            `json:"cotisable_salary"`

	// Step 3 - social security
	SocialSecurityRate        decimal.Decimal `json:"social_security_rate"`
	SocialSecurityWithholding decimal.Decimal `json:"social_security_withholding"`

	// Steps 4-6 - taxable salary and tax
	TaxableAllowances      map[string]decimal.Decimal `json:"taxable_allowances,omitempty"`
	TaxableAllowancesTotal decimal.Decimal            `json:"taxable_allowances_total"`
	TaxableSalary          decimal.Decimal            `json:"taxable_salary"`
	TaxBracketID           string                     `json:"tax_bracket_id"`
	TaxAmount              decimal.Decimal            `json:"tax_amount"`

	// Steps 7-8 - ledgers
	AdvancesDue           decimal.Decimal    `json:"advances_due"`
	CreditInstallmentsDue decimal.Decimal    `json:"credit_installments_due"`
	DueEntries            []finance.DueEntry `json:"due_entries,omitempty"`
	LeaveDaysDeducted     decimal.Decimal    `json:"leave_days_deducted"`

	// Step 9 - net
	NonTaxableAllowances      map[string]decimal.Decimal `json:"non_taxable_allowances,omitempty"`
	NonTaxableAllowancesTotal decimal.Decimal            `json:"non_taxable_allowances_total"`
	HousewifePremium          decimal.Decimal            `json:"housewife_premium"`
	NetSalary                 decimal.Decimal            `json:"net_salary"`
}

package payroll

import (
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	ContractualWorkingDays int             `json:"contractual_working_days"`
	SocialSecurityRate     decimal.Decimal `json:"social_security_rate"`
	LeaveAccrualCap        decimal.Decimal `json:"leave_accrual_cap"`
	LeaveReferenceDays     int             `json:"leave_reference_days"`
	SeniorityRatePerYear   decimal.Decimal `json:"seniority_rate_per_year"`
	SeniorityRateCap       decimal.Decimal `json:"seniority_rate_cap"`
	NightShiftRate         decimal.Decimal `json:"night_shift_rate"`
	HousewifePremium       decimal.Decimal `json:"housewife_premium"`
	AccrualCountsSick      bool            `json:"accrual_counts_sick"`
	AccrualCountsStoppage  bool            `json:"accrual_counts_stoppage"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		ContractualWorkingDays: s.ContractualWorkingDays,
		SocialSecurityRate:     s.SocialSecurityRate,
		LeaveAccrualCap:        s.LeaveAccrualCap,
		LeaveReferenceDays:     s.LeaveReferenceDays,
		SeniorityRatePerYear:   s.SeniorityRatePerYear,
		SeniorityRateCap:       s.SeniorityRateCap,
		NightShiftRate:         s.NightShiftRate,
		HousewifePremium:       s.HousewifePremium,
		AccrualCountsSick:      s.AccrualCountsSick,
		AccrualCountsStoppage:  s.AccrualCountsStoppage,
	}
}

type UpdateSettingsRequest struct {
	ContractualWorkingDays *int             `json:"contractual_working_days,omitempty"`
	SocialSecurityRate     *decimal.Decimal `json:"social_security_rate,omitempty"`
	LeaveAccrualCap        *decimal.Decimal `json:"leave_accrual_cap,omitempty"`
	LeaveReferenceDays     *int             `json:"leave_reference_days,omitempty"`
	SeniorityRatePerYear   *decimal.Decimal `json:"seniority_rate_per_year,omitempty"`
	SeniorityRateCap       *decimal.Decimal `json:"seniority_rate_cap,omitempty"`
	NightShiftRate         *decimal.Decimal `json:"night_shift_rate,omitempty"`
	HousewifePremium       *decimal.Decimal `json:"housewife_premium,omitempty"`
	AccrualCountsSick      *bool            `json:"accrual_counts_sick,omitempty"`
	AccrualCountsStoppage  *bool            `json:"accrual_counts_stoppage,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ContractualWorkingDays != nil && *r.ContractualWorkingDays < 1 {
		errs = append(errs, validator.ValidationError{Field: "contractual_working_days", Message: "must be at least 1"})
	}
	if r.SocialSecurityRate != nil && (r.SocialSecurityRate.IsNegative() || r.SocialSecurityRate.GreaterThan(decimal.NewFromInt(1))) {
		errs = append(errs, validator.ValidationError{Field: "social_security_rate", Message: "must be between 0 and 1"})
	}
	if r.LeaveAccrualCap != nil && r.LeaveAccrualCap.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "leave_accrual_cap", Message: "must be non-negative"})
	}
	if r.LeaveReferenceDays != nil && *r.LeaveReferenceDays < 1 {
		errs = append(errs, validator.ValidationError{Field: "leave_reference_days", Message: "must be at least 1"})
	}
	if r.NightShiftRate != nil && r.NightShiftRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "night_shift_rate", Message: "must be non-negative"})
	}
	if r.HousewifePremium != nil && r.HousewifePremium.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "housewife_premium", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== COMPONENT DTOs ==========

type CreateComponentRequest struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	switch ComponentKind(r.Kind) {
	case ComponentBonusCotisable, ComponentAllowanceTaxable, ComponentAllowanceNonTaxable:
	default:
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "unknown component kind"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignComponentRequest struct {
	EmployeeID    string          `json:"-"`
	ComponentID   string          `json:"component_id"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate *string         `json:"effective_date,omitempty"`
	EndDate       *string         `json:"end_date,omitempty"`
}

func (r *AssignComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ComponentID == "" {
		errs = append(errs, validator.ValidationError{Field: "component_id", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// ========== COMPUTE / BATCH DTOs ==========

type ComputeRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Store      bool   `json:"store"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchRequest struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	Store       bool     `json:"store"`
}

func (r *BatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "year/month out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BatchEntryStatus enum
type BatchEntryStatus string

const (
	BatchEntryOK            BatchEntryStatus = "ok"
	BatchEntryBusinessError BatchEntryStatus = "business_error"
	BatchEntrySystemError   BatchEntryStatus = "system_error"
)

// BatchEntry is the per-employee outcome inside a batch run.
type BatchEntry struct {
	EmployeeID  string           `json:"employee_id"`
	Status      BatchEntryStatus `json:"status"`
	Computation *Computation     `json:"computation,omitempty"`
	Cause       string           `json:"cause,omitempty"`
}

// BatchSummary - operational result of one batch run
type BatchSummary struct {
	Year           int          `json:"year"`
	Month          int          `json:"month"`
	Succeeded      int          `json:"succeeded"`
	BusinessErrors int          `json:"business_errors"`
	SystemErrors   int          `json:"system_errors"`
	Entries        []BatchEntry `json:"entries"`
}

package tax

import (
	"strconv"

	"github.com/mosala-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BracketInput struct {
	LowerBound     decimal.Decimal  `json:"lower_bound"`
	UpperBound     *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate           decimal.Decimal  `json:"rate"`
	Formula        string           `json:"formula"`
	FixedDeduction decimal.Decimal  `json:"fixed_deduction"`
}

type CreateVersionRequest struct {
	Label    string         `json:"label"`
	Brackets []BracketInput `json:"brackets"`
}

func (r *CreateVersionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Label == "" {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "is required"})
	}
	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: "at least one bracket is required"})
	}
	for i, b := range r.Brackets {
		switch FormulaKind(b.Formula) {
		case FormulaRate, FormulaRateLessDeduction:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "brackets[" + strconv.Itoa(i) + "].formula",
				Message: "must be 'rate' or 'rate_less_deduction'",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BracketResponse struct {
	ID             string           `json:"id"`
	LowerBound     decimal.Decimal  `json:"lower_bound"`
	UpperBound     *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate           decimal.Decimal  `json:"rate"`
	Formula        string           `json:"formula"`
	FixedDeduction decimal.Decimal  `json:"fixed_deduction"`
}

type VersionResponse struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Active   bool              `json:"active"`
	Brackets []BracketResponse `json:"brackets,omitempty"`
}

func NewBracketResponses(brackets []Bracket) []BracketResponse {
	result := make([]BracketResponse, 0, len(brackets))
	for _, b := range brackets {
		result = append(result, BracketResponse{
			ID:             b.ID,
			LowerBound:     b.LowerBound,
			UpperBound:     b.UpperBound,
			Rate:           b.Rate,
			Formula:        string(b.Formula),
			FixedDeduction: b.FixedDeduction,
		})
	}
	return result
}

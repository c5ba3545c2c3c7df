package tax

import (
	"context"
	"fmt"
	"sort"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	"github.com/shopspring/decimal"
)

// Resolver resolves progressive tax against one validated bracket table
// snapshot. The snapshot is immutable: a batch run builds one Resolver up
// front and every computation in the run sees the same table, regardless
// of concurrent bracket updates.
type Resolver struct {
	brackets []tax.Bracket
}

// NewResolver validates and snapshots a bracket table. The table must be
// non-empty, start at 0, be contiguous and non-overlapping, and end with
// exactly one unbounded bracket. Any violation is a data-integrity fault
// surfaced as tax.ErrMalformedBracketTable.
func NewResolver(brackets []tax.Bracket) (*Resolver, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("%w: empty table", tax.ErrMalformedBracketTable)
	}

	sorted := make([]tax.Bracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LowerBound.LessThan(sorted[j].LowerBound)
	})

	if !sorted[0].LowerBound.IsZero() {
		return nil, fmt.Errorf("%w: table does not start at 0", tax.ErrMalformedBracketTable)
	}
	for i, b := range sorted {
		switch b.Formula {
		case tax.FormulaRate, tax.FormulaRateLessDeduction:
		default:
			return nil, fmt.Errorf("%w: bracket %s has unknown formula %q", tax.ErrMalformedBracketTable, b.ID, b.Formula)
		}
		last := i == len(sorted)-1
		if last {
			if b.UpperBound != nil {
				return nil, fmt.Errorf("%w: last bracket must be unbounded", tax.ErrMalformedBracketTable)
			}
			continue
		}
		if b.UpperBound == nil {
			return nil, fmt.Errorf("%w: only the last bracket may be unbounded", tax.ErrMalformedBracketTable)
		}
		if !b.UpperBound.Equal(sorted[i+1].LowerBound) {
			return nil, fmt.Errorf("%w: gap between %s and %s", tax.ErrMalformedBracketTable, b.UpperBound, sorted[i+1].LowerBound)
		}
	}

	return &Resolver{brackets: sorted}, nil
}

// Resolve returns the tax due on a taxable amount, rounded half-up to the
// currency's 2 minor-unit decimals at this finalization point only. An
// exact boundary amount resolves to the bracket whose lower bound it
// equals. No covering bracket means the table is malformed, never a bad
// input.
func (r *Resolver) Resolve(taxable decimal.Decimal) (tax.Resolution, error) {
	for _, b := range r.brackets {
		if !b.Contains(taxable) {
			continue
		}
		amount := b.Rate.Mul(taxable)
		if b.Formula == tax.FormulaRateLessDeduction {
			amount = amount.Sub(b.FixedDeduction)
		}
		return tax.Resolution{BracketID: b.ID, Tax: amount.Round(2)}, nil
	}
	return tax.Resolution{}, fmt.Errorf("%w: %s", tax.ErrNoBracketForAmount, taxable)
}

// Brackets exposes the snapshot for itemization and admin listing.
func (r *Resolver) Brackets() []tax.Bracket {
	out := make([]tax.Bracket, len(r.brackets))
	copy(out, r.brackets)
	return out
}

// Service loads bracket tables from storage and builds resolvers.
type Service struct {
	bracketRepo tax.BracketRepository
}

func NewService(bracketRepo tax.BracketRepository) *Service {
	return &Service{bracketRepo: bracketRepo}
}

// ActiveResolver snapshots the active bracket table. Batch runs call this
// once; single computations call it per computation.
func (s *Service) ActiveResolver(ctx context.Context) (*Resolver, error) {
	brackets, err := s.bracketRepo.GetActiveBrackets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active bracket table: %w", err)
	}
	return NewResolver(brackets)
}

// CreateVersion validates the table through NewResolver before anything
// is stored, so a malformed table can never be persisted.
func (s *Service) CreateVersion(ctx context.Context, req tax.CreateVersionRequest) (tax.VersionResponse, error) {
	if err := req.Validate(); err != nil {
		return tax.VersionResponse{}, err
	}

	version := tax.Version{Label: req.Label}
	brackets := make([]tax.Bracket, 0, len(req.Brackets))
	for _, in := range req.Brackets {
		brackets = append(brackets, tax.Bracket{
			LowerBound:     in.LowerBound,
			UpperBound:     in.UpperBound,
			Rate:           in.Rate,
			Formula:        tax.FormulaKind(in.Formula),
			FixedDeduction: in.FixedDeduction,
		})
	}
	if _, err := NewResolver(brackets); err != nil {
		return tax.VersionResponse{}, err
	}

	created, err := s.bracketRepo.CreateVersion(ctx, version, brackets)
	if err != nil {
		return tax.VersionResponse{}, err
	}
	stored, err := s.bracketRepo.GetVersionBrackets(ctx, created.ID)
	if err != nil {
		return tax.VersionResponse{}, err
	}

	return tax.VersionResponse{
		ID:       created.ID,
		Label:    created.Label,
		Active:   created.Active,
		Brackets: tax.NewBracketResponses(stored),
	}, nil
}

func (s *Service) ActivateVersion(ctx context.Context, id string) error {
	return s.bracketRepo.ActivateVersion(ctx, id)
}

func (s *Service) ListVersions(ctx context.Context) ([]tax.VersionResponse, error) {
	versions, err := s.bracketRepo.ListVersions(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]tax.VersionResponse, 0, len(versions))
	for _, v := range versions {
		result = append(result, tax.VersionResponse{ID: v.ID, Label: v.Label, Active: v.Active})
	}
	return result, nil
}

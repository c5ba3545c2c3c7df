package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mosala-hr/payroll-backend-go/internal/domain/tax"
	"github.com/mosala-hr/payroll-backend-go/internal/pkg/database"
)

type bracketRepository struct {
	db *database.DB
}

func NewBracketRepository(db *database.DB) tax.BracketRepository {
	return &bracketRepository{db: db}
}

func (r *bracketRepository) GetActiveBrackets(ctx context.Context) ([]tax.Bracket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.version_id, b.lower_bound, b.upper_bound, b.rate, b.formula, b.fixed_deduction
		FROM tax_brackets b
		JOIN tax_bracket_versions v ON v.id = b.version_id
		WHERE v.active = TRUE
		ORDER BY b.lower_bound
	`

	brackets, err := r.queryBrackets(ctx, q, query)
	if err != nil {
		return nil, err
	}
	if len(brackets) == 0 {
		return nil, tax.ErrNoActiveVersion
	}

	return brackets, nil
}

func (r *bracketRepository) CreateVersion(ctx context.Context, v tax.Version, brackets []tax.Bracket) (tax.Version, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		insertVersion := `
			INSERT INTO tax_bracket_versions (label, active)
			VALUES ($1, FALSE)
			RETURNING id, created_at
		`
		if err := tx.QueryRow(ctx, insertVersion, v.Label).Scan(&v.ID, &v.CreatedAt); err != nil {
			return fmt.Errorf("failed to create tax version: %w", err)
		}

		insertBracket := `
			INSERT INTO tax_brackets (version_id, lower_bound, upper_bound, rate, formula, fixed_deduction)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, b := range brackets {
			if _, err := tx.Exec(ctx, insertBracket,
				v.ID, b.LowerBound, b.UpperBound, b.Rate, b.Formula, b.FixedDeduction,
			); err != nil {
				return fmt.Errorf("failed to create tax bracket: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return tax.Version{}, err
	}

	v.Active = false
	return v, nil
}

// ActivateVersion deactivates whatever was active and activates id in one
// transaction, keeping the single-active invariant.
func (r *bracketRepository) ActivateVersion(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE tax_bracket_versions SET active = FALSE WHERE active = TRUE`); err != nil {
			return fmt.Errorf("failed to deactivate tax versions: %w", err)
		}

		tag, err := tx.Exec(ctx, `UPDATE tax_bracket_versions SET active = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to activate tax version: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return tax.ErrVersionNotFound
		}
		return nil
	})
}

func (r *bracketRepository) ListVersions(ctx context.Context) ([]tax.Version, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, label, active, created_at
		FROM tax_bracket_versions
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax versions: %w", err)
	}
	defer rows.Close()

	var versions []tax.Version
	for rows.Next() {
		var v tax.Version
		if err := rows.Scan(&v.ID, &v.Label, &v.Active, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax version: %w", err)
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

func (r *bracketRepository) GetVersionBrackets(ctx context.Context, versionID string) ([]tax.Bracket, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tax_bracket_versions WHERE id = $1)`, versionID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check tax version: %w", err)
	}
	if !exists {
		return nil, tax.ErrVersionNotFound
	}

	query := `
		SELECT id, version_id, lower_bound, upper_bound, rate, formula, fixed_deduction
		FROM tax_brackets
		WHERE version_id = $1
		ORDER BY lower_bound
	`

	return r.queryBrackets(ctx, q, query, versionID)
}

func (r *bracketRepository) queryBrackets(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]tax.Bracket, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax brackets: %w", err)
	}
	defer rows.Close()

	var brackets []tax.Bracket
	for rows.Next() {
		var b tax.Bracket
		if err := rows.Scan(
			&b.ID, &b.VersionID, &b.LowerBound, &b.UpperBound, &b.Rate, &b.Formula, &b.FixedDeduction,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		brackets = append(brackets, b)
	}

	return brackets, rows.Err()
}

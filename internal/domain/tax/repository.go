package tax

import "context"

// BracketRepository - interface for tax_bracket_versions / tax_brackets tables
type BracketRepository interface {
	// GetActiveBrackets returns the brackets of the single active version,
	// ordered by lower bound. ErrNoActiveVersion when none is active.
	GetActiveBrackets(ctx context.Context) ([]Bracket, error)
	// CreateVersion stores a version and its brackets in one transaction.
	CreateVersion(ctx context.Context, v Version, brackets []Bracket) (Version, error)
	// ActivateVersion makes id the only active version, atomically.
	ActivateVersion(ctx context.Context, id string) error
	ListVersions(ctx context.Context) ([]Version, error)
	GetVersionBrackets(ctx context.Context, versionID string) ([]Bracket, error)
}

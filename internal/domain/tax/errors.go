package tax

import "errors"

// Both errors indicate a corrupted bracket table, not a bad input: a
// well-formed active table spans 0 to infinity and every amount resolves.
var (
	ErrMalformedBracketTable = errors.New("malformed tax bracket table")
	ErrNoBracketForAmount    = errors.New("no tax bracket covers this amount")
	ErrVersionNotFound       = errors.New("tax bracket version not found")
	ErrNoActiveVersion       = errors.New("no active tax bracket version")
)

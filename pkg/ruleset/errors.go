package ruleset

import "errors"

var (
	// ErrInvalidDocument is returned when a rule document is not a mapping of scopes to field mappings.
	ErrInvalidDocument = errors.New("invalid rule document")

	// ErrInvalidPattern is returned when a pattern rule carries an expression that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern expression")

	// ErrUnknownPatternRef is returned when a pattern rule references a name missing from the named patterns.
	ErrUnknownPatternRef = errors.New("unknown pattern reference")

	// ErrMissingPattern is returned when a pattern rule has neither an expression nor a reference.
	ErrMissingPattern = errors.New("pattern rule requires pattern or ref")
)

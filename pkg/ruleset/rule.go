package ruleset

import "regexp"

// Kind names a validation kind as it appears in rule documents.
type Kind string

const (
	KindPattern       Kind = "pattern"
	KindGroupPresence Kind = "group-presence"

	// Legacy names still found in older rule documents.
	kindRegexAlias Kind = "regex"
	kindRadioAlias Kind = "radio"
)

// Named pattern expressions shared by the bundled forms. They are plain
// constants; callers compile them where a rule is built.
const (
	// ExprExists requires at least one non-whitespace character.
	ExprExists = `\S`
	// ExprEmail requires something shaped like an email address.
	ExprEmail = `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`
	// ExprTelephone requires seven or more digits or spaces, optionally prefixed by "+".
	ExprTelephone = `(\+)?[0-9\s]{7,}`
	// ExprTenChars requires at least ten characters on one line.
	ExprTenChars = `.{10,}`
)

// DefaultNamedPatterns returns a fresh map of the bundled named expressions.
func DefaultNamedPatterns() map[string]string {
	return map[string]string{
		"exists":    ExprExists,
		"email":     ExprEmail,
		"telephone": ExprTelephone,
		"ten-chars": ExprTenChars,
	}
}

// FieldRule is the validation rule bound to one field. The set of
// implementations is closed to this package.
type FieldRule interface {
	Kind() Kind
	fieldRule()
}

// PatternRule is valid when the input value matches Regexp anywhere.
type PatternRule struct {
	Regexp *regexp.Regexp
}

func (PatternRule) Kind() Kind { return KindPattern }
func (PatternRule) fieldRule() {}

// GroupRule is valid when at least one element sharing the field name is checked.
type GroupRule struct{}

func (GroupRule) Kind() Kind { return KindGroupPresence }
func (GroupRule) fieldRule() {}

// UnknownRule keeps a kind this package does not understand.
type UnknownRule struct {
	Name string
}

func (r UnknownRule) Kind() Kind { return Kind(r.Name) }
func (UnknownRule) fieldRule()   {}

// Pattern wraps a compiled expression into a rule.
func Pattern(re *regexp.Regexp) PatternRule {
	return PatternRule{Regexp: re}
}

// MustPattern compiles expr and panics if it is invalid. Intended for
// package level rule tables.
func MustPattern(expr string) PatternRule {
	return PatternRule{Regexp: regexp.MustCompile(expr)}
}

// Group returns a group-presence rule.
func Group() GroupRule {
	return GroupRule{}
}

// Unknown returns a rule with an unrecognised kind.
func Unknown(kind string) UnknownRule {
	return UnknownRule{Name: kind}
}

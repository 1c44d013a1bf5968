// Package ruleset models declarative form validation rules and resolves them
// into per-variant rule sets.
//
// A Spec maps scope names to ordered field rules. The reserved scope "all"
// (GenericScope) holds rules shared by every variant of a form; every other
// scope names a variant, one selectable sub-form sharing a container with the
// others.
//
// # Resolution
//
// Resolve merges the generic scope into every variant once, so a validation
// pass only has to walk a single ordered list per variant:
//
//	spec := ruleset.Spec{
//	    ruleset.GenericScope: ruleset.NewFieldRules(
//	        ruleset.F("form-name", ruleset.MustPattern(ruleset.ExprExists)),
//	    ),
//	    "quote": ruleset.NewFieldRules(
//	        ruleset.F("website", ruleset.Group()),
//	    ),
//	}
//	resolved := ruleset.Resolve(spec)
//	rules, _ := resolved.Lookup("quote") // form-name, website
//
// A spec without variants resolves to exactly one entry, "all". Every entry of
// a Resolved value is an independent container: mutating one variant never
// changes another variant or the source spec.
//
// # Rules
//
// FieldRule is a sealed union. PatternRule matches the current value of an
// input against a regular expression, GroupRule requires at least one element
// of a named group to be checked. UnknownRule carries a kind read from
// configuration that this package does not recognise, so the caller can
// report it when the field is reached.
//
// # Decoding
//
// Decode reads a Spec from YAML, keeping field order as written:
//
//	all:
//	  form-name:
//	    kind: pattern
//	    ref: exists
//	quote:
//	  website:
//	    kind: group-presence
//
// The legacy kind names "regex" and "radio" are accepted as aliases.
package ruleset

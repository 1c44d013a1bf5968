// Package fieldcheck evaluates a single field against a single rule.
//
// Every function is free of side effects: it reads the document and reports
// whether the field is valid together with the element that should carry the
// invalid indicator. Marking elements is left to the caller.
package fieldcheck

import (
	"regexp"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

// Result is the outcome of one evaluation.
type Result struct {
	Valid bool
	// Element is the element that represents the field in the document.
	// For group rules it is the group container and may be nil.
	Element dom.Element
}

// MatchPattern reports whether re matches anywhere in value. No trimming or
// normalisation is applied; anchor the expression to require a full match.
// A nil expression never matches.
func MatchPattern(value string, re *regexp.Regexp) bool {
	if re == nil {
		return false
	}
	return re.MatchString(value)
}

// EvaluatePattern checks the current value of input against re.
func EvaluatePattern(input dom.Element, re *regexp.Regexp) Result {
	return Result{
		Valid:   MatchPattern(input.Value(), re),
		Element: input,
	}
}

// AnySelected reports whether at least one element is checked. An empty
// group is not selected.
func AnySelected(elems []dom.Element) bool {
	for _, el := range elems {
		if el.Checked() {
			return true
		}
	}
	return false
}

// EvaluateGroupPresence checks that at least one element named name is
// checked. The result element is the group container, since no single input
// stands for the whole group.
func EvaluateGroupPresence(doc dom.Document, name string) Result {
	return Result{
		Valid:   AnySelected(dom.ByName(doc, name)),
		Element: dom.ByID(doc, dom.GroupBoxID(name)),
	}
}

package ruleset

import (
	"maps"
	"slices"
)

// GenericScope is the reserved scope whose rules apply to every variant.
const GenericScope = "all"

// Spec maps scope names to field rules.
type Spec map[string]*FieldRules

// Variants returns the non-generic scope names, sorted.
func (s Spec) Variants() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		if k != GenericScope {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Resolved maps variant names to fully merged field rules.
type Resolved map[string]*FieldRules

// Lookup returns the rules for variant.
func (r Resolved) Lookup(variant string) (*FieldRules, bool) {
	rules, ok := r[variant]
	return rules, ok
}

// Variants returns the resolvable variant names, sorted.
func (r Resolved) Variants() []string {
	return slices.Sorted(maps.Keys(r))
}

// Resolve merges the generic scope into each variant. Without variants the
// result has a single "all" entry copied from the generic scope. An empty or
// nil spec resolves to an empty set.
func Resolve(spec Spec) Resolved {
	out := make(Resolved)
	if len(spec) == 0 {
		return out
	}

	generic := spec[GenericScope]
	variants := spec.Variants()

	if len(variants) == 0 {
		out[GenericScope] = generic.Clone()
		return out
	}

	for _, v := range variants {
		out[v] = Merge(generic, spec[v])
	}
	return out
}

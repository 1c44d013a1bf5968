package ruleset

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field pairs a field name with its rule.
type Field struct {
	Name string
	Rule FieldRule
}

// F is shorthand for building a Field.
func F(name string, rule FieldRule) Field {
	return Field{Name: name, Rule: rule}
}

// FieldRules is an insertion ordered map from field name to rule.
// Setting an existing name replaces its rule in place and keeps its position.
// A nil *FieldRules reads as empty; Set needs a non-nil value, built with
// NewFieldRules.
type FieldRules struct {
	m *orderedmap.OrderedMap[string, FieldRule]
}

// NewFieldRules builds a map from fields in the given order. Later duplicates
// override earlier ones.
func NewFieldRules(fields ...Field) *FieldRules {
	r := &FieldRules{m: orderedmap.New[string, FieldRule]()}
	for _, f := range fields {
		r.Set(f.Name, f.Rule)
	}
	return r
}

// Set adds or replaces the rule of name. r must not be nil.
func (r *FieldRules) Set(name string, rule FieldRule) {
	if r.m == nil {
		r.m = orderedmap.New[string, FieldRule]()
	}
	r.m.Set(name, rule)
}

// Get returns the rule of name.
func (r *FieldRules) Get(name string) (FieldRule, bool) {
	if r == nil || r.m == nil {
		return nil, false
	}
	return r.m.Get(name)
}

// Delete removes name and reports whether it was present.
func (r *FieldRules) Delete(name string) bool {
	if r == nil || r.m == nil {
		return false
	}
	_, ok := r.m.Delete(name)
	return ok
}

// Len returns the number of fields.
func (r *FieldRules) Len() int {
	if r == nil || r.m == nil {
		return 0
	}
	return r.m.Len()
}

// All iterates fields in order.
func (r *FieldRules) All() iter.Seq2[string, FieldRule] {
	return func(yield func(string, FieldRule) bool) {
		if r == nil || r.m == nil {
			return
		}
		for p := r.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Names returns field names in order.
func (r *FieldRules) Names() []string {
	names := make([]string, 0, r.Len())
	for name := range r.All() {
		names = append(names, name)
	}
	return names
}

// Fields returns the ordered fields as a slice.
func (r *FieldRules) Fields() []Field {
	fields := make([]Field, 0, r.Len())
	for name, rule := range r.All() {
		fields = append(fields, Field{Name: name, Rule: rule})
	}
	return fields
}

// Clone returns an independent copy. Rule values are immutable and shared.
func (r *FieldRules) Clone() *FieldRules {
	out := NewFieldRules()
	for name, rule := range r.All() {
		out.Set(name, rule)
	}
	return out
}

// Merge returns a new map holding base overridden by override. Fields of
// base keep their order (overridden ones in place), fields only present in
// override follow in their own order. Neither argument is modified.
func Merge(base, override *FieldRules) *FieldRules {
	out := base.Clone()
	for name, rule := range override.All() {
		out.Set(name, rule)
	}
	return out
}

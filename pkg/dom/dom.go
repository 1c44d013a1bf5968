package dom

import (
	"fmt"
	"strings"
)

// Element is a single node of the document.
type Element interface {
	// Tag returns the lower case element name.
	Tag() string
	Attr(name string) (string, bool)
	// Value returns the current value of a form control.
	Value() string
	// Checked reports whether a checkbox, radio or option is selected.
	Checked() bool
	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
	// Display returns the inline display style, empty when unset.
	Display() string
	// SetDisplay sets the inline display style. An empty value removes it.
	SetDisplay(value string)
}

// Document is a queryable tree of elements.
type Document interface {
	// Query returns the first element matching a CSS selector, or nil.
	Query(selector string) Element
	// QueryAll returns every element matching a CSS selector in document order.
	QueryAll(selector string) []Element
}

// HintID returns the id of the hint element for field.
func HintID(field string) string {
	return "hint-" + field
}

// GroupBoxID returns the id of the container element for a group field.
func GroupBoxID(field string) string {
	return "form-box-" + field
}

// NameSelector matches elements whose name attribute equals name.
func NameSelector(name string) string {
	return fmt.Sprintf(`[name="%s"]`, escapeAttr(name))
}

// IDSelector matches the element whose id equals id. An attribute selector
// is used so that ids need no identifier escaping.
func IDSelector(id string) string {
	return fmt.Sprintf(`[id="%s"]`, escapeAttr(id))
}

// ByName returns every element named name.
func ByName(doc Document, name string) []Element {
	return doc.QueryAll(NameSelector(name))
}

// FirstByName returns the first element named name, or nil.
func FirstByName(doc Document, name string) Element {
	return doc.Query(NameSelector(name))
}

// ByID returns the element with the given id, or nil.
func ByID(doc Document, id string) Element {
	return doc.Query(IDSelector(id))
}

// CheckedValue returns the value of the first checked element named name.
func CheckedValue(doc Document, name string) (string, bool) {
	for _, el := range ByName(doc, name) {
		if el.Checked() {
			return el.Value(), true
		}
	}
	return "", false
}

func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

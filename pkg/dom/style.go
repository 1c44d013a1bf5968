package dom

import "strings"

// styleProperty returns the value of prop in an inline style declaration.
func styleProperty(style, prop string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// withStyleProperty rewrites style with prop set to value, or removed when
// value is empty. Other declarations keep their order.
func withStyleProperty(style, prop, value string) string {
	decls := make([]string, 0, 4)
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, _, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), prop) {
			if value != "" && !replaced {
				decls = append(decls, prop+": "+value)
			}
			replaced = true
			continue
		}
		decls = append(decls, decl)
	}
	if !replaced && value != "" {
		decls = append(decls, prop+": "+value)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}

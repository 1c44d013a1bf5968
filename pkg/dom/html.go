package dom

import (
	"errors"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLDocument is a parsed HTML page.
type HTMLDocument struct {
	doc *goquery.Document
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return &HTMLDocument{doc: doc}, nil
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

func (d *HTMLDocument) Query(selector string) Element {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return &HTMLElement{sel: sel.First()}
}

func (d *HTMLDocument) QueryAll(selector string) []Element {
	sel := d.doc.Find(selector)
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &HTMLElement{sel: s})
	})
	return out
}

// Render writes the whole document.
func (d *HTMLDocument) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return errors.Join(ErrRender, err)
		}
	}
	return nil
}

// HTML returns the rendered document.
func (d *HTMLDocument) HTML() (string, error) {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Fill copies submitted values into the named controls inside the elements
// matched by scope (the whole document when scope is empty). Controls absent
// from values are cleared, the way a browser omits unchecked boxes.
func (d *HTMLDocument) Fill(scope string, values url.Values) {
	root := d.doc.Selection
	if scope != "" {
		root = d.doc.Find(scope)
	}

	root.Find("input[name], textarea[name], select[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		submitted := values[name]

		switch goquery.NodeName(s) {
		case "textarea":
			s.SetText(first(submitted))
		case "select":
			s.Find("option").Each(func(_ int, opt *goquery.Selection) {
				setFlag(opt, "selected", slices.Contains(submitted, optionValue(opt)))
			})
		default:
			switch strings.ToLower(s.AttrOr("type", "text")) {
			case "checkbox", "radio":
				setFlag(s, "checked", slices.Contains(submitted, s.AttrOr("value", "on")))
			case "submit", "button", "reset", "image", "file":
			default:
				s.SetAttr("value", first(submitted))
			}
		}
	})
}

// HTMLElement is an Element backed by a single goquery selection.
type HTMLElement struct {
	sel *goquery.Selection
}

// Selection exposes the underlying goquery selection.
func (e *HTMLElement) Selection() *goquery.Selection { return e.sel }

// OuterHTML renders the element including its own tag.
func (e *HTMLElement) OuterHTML() (string, error) {
	s, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return s, nil
}

func (e *HTMLElement) Tag() string { return goquery.NodeName(e.sel) }

func (e *HTMLElement) Attr(name string) (string, bool) { return e.sel.Attr(name) }

func (e *HTMLElement) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.sel.Text()
	case "select":
		opts := e.sel.Find("option")
		if selected := opts.FilterFunction(func(_ int, o *goquery.Selection) bool {
			_, ok := o.Attr("selected")
			return ok
		}); selected.Length() > 0 {
			return optionValue(selected.First())
		}
		if opts.Length() > 0 {
			return optionValue(opts.First())
		}
		return ""
	case "option":
		return optionValue(e.sel)
	default:
		return e.sel.AttrOr("value", "")
	}
}

func (e *HTMLElement) Checked() bool {
	if e.Tag() == "option" {
		_, ok := e.sel.Attr("selected")
		return ok
	}
	_, ok := e.sel.Attr("checked")
	return ok
}

func (e *HTMLElement) HasClass(class string) bool { return e.sel.HasClass(class) }

func (e *HTMLElement) AddClass(class string) { e.sel.AddClass(class) }

func (e *HTMLElement) RemoveClass(class string) {
	e.sel.RemoveClass(class)
	if v, ok := e.sel.Attr("class"); ok && strings.TrimSpace(v) == "" {
		e.sel.RemoveAttr("class")
	}
}

func (e *HTMLElement) Display() string {
	return styleProperty(e.sel.AttrOr("style", ""), "display")
}

func (e *HTMLElement) SetDisplay(value string) {
	style := withStyleProperty(e.sel.AttrOr("style", ""), "display", value)
	if style == "" {
		e.sel.RemoveAttr("style")
		return
	}
	e.sel.SetAttr("style", style)
}

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

func setFlag(s *goquery.Selection, attr string, on bool) {
	if on {
		s.SetAttr(attr, attr)
		return
	}
	s.RemoveAttr(attr)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

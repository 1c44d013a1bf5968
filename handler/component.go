package handler

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

// Element renders el, including its own tag, as a templ component.
func Element(el *dom.HTMLElement) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s, err := el.OuterHTML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	})
}

// Document renders the whole document as a templ component.
func Document(doc *dom.HTMLDocument) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return doc.Render(w)
	})
}

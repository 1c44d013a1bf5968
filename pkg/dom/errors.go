package dom

import "errors"

var (
	// ErrParse is returned when an HTML document cannot be parsed.
	ErrParse = errors.New("failed to parse html document")

	// ErrRender is returned when a document or element cannot be rendered.
	ErrRender = errors.New("failed to render html")
)

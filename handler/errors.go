package handler

import "errors"

var (
	ErrFormNotFound   = errors.New("form not found")
	ErrDuplicateForm  = errors.New("duplicate form name")
	ErrNoForms        = errors.New("no forms configured")
	ErrNotHTMLElement = errors.New("form root is not an HTML element")
)

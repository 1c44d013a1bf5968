package formkit

import "errors"

var (
	// ErrNilDocument is returned by New when no document is supplied.
	ErrNilDocument = errors.New("formkit: nil document")

	// ErrRootNotFound is returned by New when the selector matches nothing.
	ErrRootNotFound = errors.New("formkit: form root element not found")

	// ErrUnknownRuleKind is wrapped by processing errors for rules of an unrecognised kind.
	ErrUnknownRuleKind = errors.New("unknown validation rule kind")

	// ErrInvalidRule is wrapped by processing errors for rules that cannot be evaluated.
	ErrInvalidRule = errors.New("invalid validation rule")

	// ErrUnknownVariant is wrapped by processing errors when a run names a variant the processor does not have.
	ErrUnknownVariant = errors.New("unknown form variant")

	// ErrNoVariantSelected is wrapped by processing errors when the variant selector group has no checked element.
	ErrNoVariantSelected = errors.New("no form variant selected")

	// ErrMissingElement is wrapped by processing errors when a field has no element to validate or mark.
	ErrMissingElement = errors.New("form element not found")

	// ErrRunInProgress is wrapped by processing errors when a call overlaps a running validation or reset.
	ErrRunInProgress = errors.New("validation run already in progress")
)

// Package formkit binds declarative validation rules to forms in a document
// and reports validity back onto that document.
//
// A Processor is bound to one form root, found by selector, and to one rule
// spec. Specs have a generic scope, "all", and optional named variants. A
// single form uses only "all"; a multi form lists one scope per variant (for
// example "enquiry" and "quote" sharing one container) and every variant
// inherits the generic rules. The spec is resolved once, when the Processor
// is created.
//
// # Validation runs
//
// Validate clears the indicators of the previous run, walks the variant's
// fields in a stable order (generic fields first, then variant-only fields)
// and, for every invalid field, adds the invalid class to its element and
// shows the field hint ("hint-<field>") when the document has one:
//
//	p, err := formkit.New(doc, "#main-form", spec,
//	    formkit.WithEventHandler(formkit.EventSubmit, formkit.ValidateSelected("contact-type")),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := p.Dispatch(ctx, formkit.Event{Type: formkit.EventSubmit}); err != nil {
//	    // a ProcessingError: the run was aborted
//	}
//	for _, e := range p.Errors() {
//	    fmt.Println(e.Field)
//	}
//
// ResetValidity removes the indicators and empties the error list; calling
// it twice is the same as calling it once.
//
// # Processing errors
//
// Problems that stop a run are ProcessingError values: an unrecognised rule
// kind, an unknown variant, a field with no element in the document. They
// carry a generic user facing message and a technical message naming the
// field or variant, are handed to the configured ErrorSink and are returned
// to the caller. A run aborted half way keeps the failures it recorded before
// the abort.
//
// # Concurrency
//
// A Processor is meant to be driven by one caller at a time, one per
// document. Calls that overlap a running Validate or ResetValidity are
// rejected with ErrRunInProgress instead of interleaving.
package formkit

// Package handler exposes forms of an HTML page over HTTP and validates
// their submissions server side.
//
// The page is parsed once at start up to check every configured form is
// present. Each submission parses a fresh copy, fills the submitted values
// into the form, loads the form rules from a rulesource.Source, and
// dispatches a submit event to a formkit.Processor bound to that copy.
//
//	h, err := handler.New(page, src, []handler.Form{
//	    {Name: "main-form", Selector: "#main-form", VariantField: "contact-type"},
//	    {Name: "single-form", Selector: "#single-form"},
//	}, handler.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	r := chi.NewRouter()
//	r.Mount("/", h.Routes())
//
// The response follows the client:
//
//   - DataStar requests get an SSE stream patching the marked up form in
//     place, then a "formkit" signal with the Result.
//   - HTMX requests get the form alone with status 200, so the swap happens
//     even when fields are invalid.
//   - Clients accepting only JSON get the Result.
//   - Everything else gets the whole page, 422 when fields are invalid.
package handler
